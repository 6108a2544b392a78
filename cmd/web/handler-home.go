package main

import (
	"net/http"

	"github.com/bclaudel/paname/internal/contexthelpers"
	"github.com/bclaudel/paname/internal/game"
)

type BaseTemplateData struct {
	CurrentPath string
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		CurrentPath: contexthelpers.CurrentPath(r.Context()),
	}
}

type homeTemplateData struct {
	BaseTemplateData
	Stats    game.Stats
	Entries  []game.FoundEntry
	Sort     game.Order
	Rejected bool
}

func (app *application) homeData(r *http.Request, sort game.Order) (homeTemplateData, error) {
	fs, err := app.loadFoundSet(r)
	if err != nil {
		return homeTemplateData{}, err
	}

	return homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Stats:            game.ComputeStats(app.corpus, fs),
		Entries:          game.FoundList(app.corpus, fs, sort),
		Sort:             sort,
		Rejected:         false,
	}, nil
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	data, err := app.homeData(r, game.ParseOrder(r.URL.Query().Get("sort")))
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "home", data)
}
