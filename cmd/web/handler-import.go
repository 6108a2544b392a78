package main

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/bclaudel/paname/internal/contexthelpers"
	"github.com/bclaudel/paname/internal/corpus"
	"github.com/bclaudel/paname/internal/errors"
	"github.com/bclaudel/paname/internal/game"
)

const maxImportSize = 1 << 20

// importProgress replaces the player's found set with an uploaded export.
// Exports from an older corpus are migrated on the way in.
func (app *application) importProgress(w http.ResponseWriter, r *http.Request) {
	body, err := importBody(r)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	var progress progressExport
	if err = json.Unmarshal(body, &progress); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	ids := progress.Found
	currentVersion := strconv.FormatUint(app.corpus.Version(), 16)
	if progress.CorpusVersion != currentVersion {
		ids = game.Migrate(ids, app.legacyName, app.corpus).IDs()
	} else {
		ids = sanitizeImport(ids, app.corpus)
	}

	playerID := contexthelpers.PlayerID(r.Context())
	if err = app.players.Replace(r.Context(), playerID, ids); err != nil {
		app.serverError(w, r, err)
		return
	}
	if err = app.players.SetCorpusVersion(r.Context(), playerID, currentVersion); err != nil {
		app.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// sanitizeImport drops duplicate and unknown ids while preserving order.
// Hand-edited files are the norm here, not the exception.
func sanitizeImport(ids []int64, c *corpus.Corpus) []int64 {
	sanitized := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || !c.Contains(id) {
			continue
		}
		seen[id] = struct{}{}
		sanitized = append(sanitized, id)
	}
	return sanitized
}

// importBody reads the export from either a multipart file upload or a raw
// request body.
func importBody(r *http.Request) ([]byte, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportSize); err != nil {
			return nil, errors.Wrap(err, "parse multipart form")
		}
		file, _, err := r.FormFile("progress")
		if err != nil {
			return nil, errors.Wrap(err, "read progress file")
		}
		defer func() {
			_ = file.Close()
		}()
		return io.ReadAll(io.LimitReader(file, maxImportSize))
	}

	return io.ReadAll(io.LimitReader(r.Body, maxImportSize))
}
