package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/justinas/nosurf"

	"github.com/bclaudel/paname/internal/contexthelpers"
	"github.com/bclaudel/paname/internal/errors"
	"github.com/bclaudel/paname/internal/game"
	"github.com/bclaudel/paname/internal/random"
)

func (app *application) secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonceLength := uint(18)
		nonce, err := random.Letters(nonceLength)
		if err != nil {
			app.serverError(w, r, errors.Wrap(err, "generate CSP nonce"))
			return
		}
		w.Header().Set("Content-Security-Policy",
			fmt.Sprintf(`script-src 'nonce-%s' 'strict-dynamic' https: http:;
				   object-src 'none';
				   base-uri 'none';`, nonce))

		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")

		next.ServeHTTP(w, contexthelpers.SetCSPNonce(r, nonce))
	})
}

func cacheForeverHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			proto  = r.Proto
			method = r.Method
			uri    = r.URL.RequestURI()
		)

		app.logger.Debug("received request", "proto", proto, "method", method, "uri", uri)

		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// player resolves the session to a player identity, creating it on first
// visit, and migrates stored progress when it belongs to an older corpus.
func (app *application) player(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		playerID := app.sessionManager.GetString(ctx, playerIDSessionKey)
		if playerID == "" {
			var err error
			tokenLength := uint(32)
			if playerID, err = random.Letters(tokenLength); err != nil {
				app.serverError(w, r, errors.Wrap(err, "generate player id"))
				return
			}
			app.sessionManager.Put(ctx, playerIDSessionKey, playerID)
		}

		if err := app.players.Ensure(ctx, playerID); err != nil {
			app.serverError(w, r, err)
			return
		}
		if err := app.migrateProgress(r, playerID); err != nil {
			app.serverError(w, r, err)
			return
		}

		next.ServeHTTP(w, contexthelpers.SetPlayerID(r, playerID))
	})
}

// migrateProgress carries the player's found set over to the current corpus
// when their stored progress was earned against an older one.
func (app *application) migrateProgress(r *http.Request, playerID string) error {
	ctx := r.Context()
	currentVersion := strconv.FormatUint(app.corpus.Version(), 16)

	storedVersion, err := app.players.CorpusVersion(ctx, playerID)
	if err != nil {
		return errors.Wrap(err, "read corpus version")
	}
	if storedVersion == currentVersion {
		return nil
	}

	foundIDs, err := app.players.FoundIDs(ctx, playerID)
	if err != nil {
		return errors.Wrap(err, "read found set")
	}
	if len(foundIDs) > 0 {
		migrated := game.Migrate(foundIDs, app.legacyName, app.corpus)
		if err = app.players.Replace(ctx, playerID, migrated.IDs()); err != nil {
			return errors.Wrap(err, "store migrated found set")
		}
		app.logger.LogAttrs(ctx, slog.LevelInfo, "migrated player progress",
			slog.Int("legacy_found", len(foundIDs)),
			slog.Int("migrated_found", migrated.Len()))
	}

	if err = app.players.SetCorpusVersion(ctx, playerID, currentVersion); err != nil {
		return errors.Wrap(err, "store corpus version")
	}
	return nil
}

// legacyName resolves an entity id against the previous dataset revision when
// one is configured. Without it, migration keeps only ids that survived into
// the current corpus.
func (app *application) legacyName(id int64) (string, bool) {
	if app.legacyCorpus == nil {
		return "", false
	}
	e, ok := app.legacyCorpus.ByID(id)
	if !ok {
		return "", false
	}
	return e.Name, true
}

// serverSentEventMiddleware makes our session library scs work with Server Sent Events (SSE).
// Use this instead of app.sessionManager.LoadAndSave.
// See https://github.com/alexedwards/scs/issues/141#issuecomment-1807075358
func (app *application) serverSentEventMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		cookie, err := r.Cookie(app.sessionManager.Cookie.Name)
		if err == nil {
			token = cookie.Value
		}
		ctx, err := app.sessionManager.Load(r.Context(), token)
		if err != nil {
			app.serverError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func commonContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = contexthelpers.SetCurrentPath(r, r.URL.Path)
		r = contexthelpers.SetCSRFToken(r, nosurf.Token(r))
		next.ServeHTTP(w, r)
	})
}

// noSurf implements CSRF protection using https://github.com/justinas/nosurf
func noSurf(next http.Handler) http.Handler {
	csrfHandler := nosurf.New(next)
	csrfHandler.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		Secure:   true,
	})

	return csrfHandler
}
