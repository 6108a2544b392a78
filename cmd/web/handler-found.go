package main

import (
	"net/http"

	"github.com/bclaudel/paname/internal/game"
)

// found re-renders the found list in the requested ordering.
func (app *application) found(w http.ResponseWriter, r *http.Request) {
	sort := game.ParseOrder(r.URL.Query().Get("sort"))

	h := app.htmx.NewHandler(w, r)
	if !h.IsHxRequest() {
		http.Redirect(w, r, "/?sort="+string(sort), http.StatusSeeOther)
		return
	}

	data, err := app.homeData(r, sort)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.renderPartial(w, r, http.StatusOK, "home", "found-list", data)
}
