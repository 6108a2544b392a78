package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bclaudel/paname/internal/contexthelpers"
	"github.com/bclaudel/paname/internal/errors"
)

// eventStream pushes accepted entity ids to the player's open tabs over
// Server-Sent Events so the map and found list stay in sync across tabs.
func (app *application) eventStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		app.serverError(w, r, errors.New("response writer does not support streaming"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	playerID := contexthelpers.PlayerID(r.Context())
	accepted, cancel := app.events.Subscribe(playerID)
	defer cancel()

	// Keep intermediaries from reaping the idle connection.
	heartbeatInterval := 30 * time.Second
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			_, _ = fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		case ids, open := <-accepted:
			if !open {
				return
			}
			payload, err := json.Marshal(ids)
			if err != nil {
				app.serverError(w, r, err)
				return
			}
			_, _ = fmt.Fprintf(w, "event: found\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
