package main

import (
	"encoding/json"
	"net/http"

	"github.com/bclaudel/paname/internal/game"
)

// stats serves the player's progress statistics as JSON.
func (app *application) stats(w http.ResponseWriter, r *http.Request) {
	fs, err := app.loadFoundSet(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(game.ComputeStats(app.corpus, fs)); err != nil {
		app.serverError(w, r, err)
		return
	}
}
