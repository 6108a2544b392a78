package main

import (
	"net/http"

	"github.com/bclaudel/paname/internal/contexthelpers"
	"github.com/bclaudel/paname/internal/game"
)

// guess evaluates a submitted name. Accepted entities are appended to the
// found set and mirrored to the player's other tabs through the event stream.
// A miss is a routine outcome, not an error: the game re-renders with a
// transient "incorrect" signal.
func (app *application) guess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	query := r.PostForm.Get("guess")

	fs, err := app.loadFoundSet(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	accepted := app.policy.Accept(query, app.index.Search(query), fs.Contains)
	if len(accepted) > 0 {
		playerID := contexthelpers.PlayerID(r.Context())
		if err = app.players.Append(r.Context(), playerID, accepted); err != nil {
			app.serverError(w, r, err)
			return
		}
		fs.Add(accepted...)
		app.events.Publish(playerID, accepted)
	}

	h := app.htmx.NewHandler(w, r)
	if !h.IsHxRequest() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Stats:            game.ComputeStats(app.corpus, fs),
		Entries:          game.FoundList(app.corpus, fs, game.OrderRecency),
		Sort:             game.OrderRecency,
		Rejected:         len(accepted) == 0,
	}
	app.renderPartial(w, r, http.StatusOK, "home", "game", data)
}
