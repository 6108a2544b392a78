// Command migratetest verifies that the declarative schema sync brings a
// production database copy up to date. It is meant to run against a snapshot
// before deploying a schema change.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/bclaudel/paname/internal/errors"
	"github.com/bclaudel/paname/internal/sqlite"
	"github.com/bclaudel/paname/internal/testhelpers"
)

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("PANAME_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "PANAME_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	// Count the players and their found entities as a sanity check that the
	// synchronized schema still reads the existing data.
	var players, found int
	if err = db.ReadWrite.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&players); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error counting players", errors.SlogError(err))
		os.Exit(1)
	}
	if err = db.ReadWrite.QueryRowContext(ctx, `SELECT COUNT(*) FROM found_entities`).Scan(&found); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error counting found entities", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "database contents",
		slog.Int("players", players), slog.Int("found_entities", found))

	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}
