package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bclaudel/paname/internal/contexthelpers"
)

// progressExport is the download format for player progress. Found ids are
// ordered most recent first; importing an export reproduces the same found
// set, order included.
type progressExport struct {
	CorpusVersion string  `json:"corpus_version"`
	Found         []int64 `json:"found"`
}

func (app *application) exportProgress(w http.ResponseWriter, r *http.Request) {
	playerID := contexthelpers.PlayerID(r.Context())
	ids, err := app.players.FoundIDs(r.Context(), playerID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="paname-progress.json"`)
	if err = json.NewEncoder(w).Encode(progressExport{
		CorpusVersion: strconv.FormatUint(app.corpus.Version(), 16),
		Found:         ids,
	}); err != nil {
		app.serverError(w, r, err)
		return
	}
}
