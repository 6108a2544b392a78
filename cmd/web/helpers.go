package main

import (
	"log/slog"
	"net/http"

	"github.com/bclaudel/paname/internal/contexthelpers"
	"github.com/bclaudel/paname/internal/errors"
	"github.com/bclaudel/paname/internal/game"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Debug(http.StatusText(status), "method", method, "uri", uri, slog.Any("formdata", r.Form))
	http.Error(w, http.StatusText(status), status)
}

// loadFoundSet reads the current player's found set from the repository.
func (app *application) loadFoundSet(r *http.Request) (*game.FoundSet, error) {
	playerID := contexthelpers.PlayerID(r.Context())
	ids, err := app.players.FoundIDs(r.Context(), playerID)
	if err != nil {
		return nil, errors.Wrap(err, "load found set")
	}
	return game.NewFoundSet(ids), nil
}
