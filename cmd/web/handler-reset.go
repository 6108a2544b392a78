package main

import (
	"net/http"

	"github.com/bclaudel/paname/internal/contexthelpers"
	"github.com/bclaudel/paname/internal/game"
)

// reset wipes the player's progress. Confirming intent is the client's job,
// the server resets unconditionally.
func (app *application) reset(w http.ResponseWriter, r *http.Request) {
	playerID := contexthelpers.PlayerID(r.Context())
	if err := app.players.Reset(r.Context(), playerID); err != nil {
		app.serverError(w, r, err)
		return
	}

	h := app.htmx.NewHandler(w, r)
	if !h.IsHxRequest() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Stats:            game.ComputeStats(app.corpus, game.NewFoundSet(nil)),
		Entries:          nil,
		Sort:             game.OrderRecency,
		Rejected:         false,
	}
	app.renderPartial(w, r, http.StatusOK, "home", "game", data)
}
