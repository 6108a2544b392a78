package main

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/justinas/alice"

	"github.com/bclaudel/paname/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	defaultTimeout := 5 * time.Second
	withTimeout := func(next http.Handler) http.Handler {
		return timeoutHandler(next, defaultTimeout)
	}

	staticFiles, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err)
	}
	fileServer := http.FileServer(http.FS(staticFiles))
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static", fileServer)))

	session := alice.New(withTimeout, app.sessionManager.LoadAndSave, noSurf, app.player, commonContext)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("POST /guess", session.ThenFunc(app.guess))
	mux.Handle("GET /found", session.ThenFunc(app.found))
	mux.Handle("POST /reset", session.ThenFunc(app.reset))
	mux.Handle("GET /export", session.ThenFunc(app.exportProgress))
	mux.Handle("POST /import", session.ThenFunc(app.importProgress))

	// SSE cannot run under scs's LoadAndSave nor the timeout handler, both
	// buffer the response until the handler returns.
	stream := alice.New(app.serverSentEventMiddleware, app.player, commonContext)
	mux.Handle("GET /events", stream.ThenFunc(app.eventStream))

	mux.Handle("GET /api/stats", session.ThenFunc(app.stats))
	mux.Handle("GET /api/healthy", alice.New(withTimeout).ThenFunc(app.healthy))

	return app.recoverPanic(app.logRequest(app.secureHeaders(mux)))
}
