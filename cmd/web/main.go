package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"

	"github.com/bclaudel/paname/internal/broker"
	"github.com/bclaudel/paname/internal/corpus"
	"github.com/bclaudel/paname/internal/envstruct"
	"github.com/bclaudel/paname/internal/errors"
	"github.com/bclaudel/paname/internal/logging"
	"github.com/bclaudel/paname/internal/pprofserver"
	"github.com/bclaudel/paname/internal/repositories"
	"github.com/bclaudel/paname/internal/search"
	"github.com/bclaudel/paname/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	corpus         *corpus.Corpus
	legacyCorpus   *corpus.Corpus
	index          *search.Index
	policy         search.Policy
	sessionManager *scs.SessionManager
	players        *repositories.PlayerRepository
	events         *broker.Broker[string, []int64]
	htmx           *htmx.HTMX
}

// config holds the environment configuration. The matcher values are tuning
// parameters, not contracts, so they stay adjustable without a rebuild.
type config struct {
	Addr              string  `env:"PANAME_ADDR" envDefault:"localhost:4000"`
	PprofPort         string  `env:"PANAME_PPROF_PORT" envDefault:":6060"`
	SQLiteURL         string  `env:"PANAME_SQLITE_URL" envDefault:"./paname.sqlite"`
	DatasetPath       string  `env:"PANAME_DATASET_PATH" envDefault:"./ui/static/dataset.geojson"`
	LegacyDatasetPath string  `env:"PANAME_LEGACY_DATASET_PATH" envDefault:""`
	MatchThreshold    float64 `env:"PANAME_MATCH_THRESHOLD" envDefault:"0.15"`
	MatchDistance     int     `env:"PANAME_MATCH_DISTANCE" envDefault:"10"`
	MinMatchLength    int     `env:"PANAME_MIN_MATCH_LENGTH" envDefault:"2"`
	AnchorStartOffset int     `env:"PANAME_ANCHOR_START_OFFSET" envDefault:"2"`
	AnchorEndOffset   int     `env:"PANAME_ANCHOR_END_OFFSET" envDefault:"2"`
	MaxLengthDiff     int     `env:"PANAME_MAX_LENGTH_DIFF" envDefault:"4"`
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
	logger := slog.New(loggerHandler)

	// Missing .env is fine, the environment may be configured externally.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Error("load .env", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(context.Background(), logger, os.LookupEnv); err != nil {
		logger.Error("server exited with error", errors.SlogError(err))
		os.Exit(1)
	}
}

// run wires the application together and starts the server. Dependencies that
// differ between production and tests come in as parameters.
func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse configuration")
	}

	// pprof listens on localhost so that it's not open to the world.
	pprofserver.Launch(cfg.PprofPort, logger)

	c, err := loadCorpus(cfg.DatasetPath)
	if err != nil {
		return errors.Wrap(err, "load corpus", slog.String("path", cfg.DatasetPath))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "loaded corpus",
		slog.Int("entities", c.Len()),
		slog.String("version", strconv.FormatUint(c.Version(), 16)))

	var legacy *corpus.Corpus
	if cfg.LegacyDatasetPath != "" {
		if legacy, err = loadCorpus(cfg.LegacyDatasetPath); err != nil {
			return errors.Wrap(err, "load legacy corpus", slog.String("path", cfg.LegacyDatasetPath))
		}
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SQLiteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to database")

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour)
	// Progress lives in the database keyed by the session, so the session
	// should outlive a casual break from the game.
	sessionManager.Lifetime = 365 * 24 * time.Hour
	sessionManager.Cookie.Persist = true

	events := broker.New[string, []int64]()
	go events.Start()
	defer events.Stop()

	app := application{
		logger:       logger,
		corpus:       c,
		legacyCorpus: legacy,
		index: search.NewIndex(c, search.Options{
			Threshold:      cfg.MatchThreshold,
			Distance:       cfg.MatchDistance,
			MinMatchLength: cfg.MinMatchLength,
		}),
		policy: search.Policy{
			StartOffset:   cfg.AnchorStartOffset,
			EndOffset:     cfg.AnchorEndOffset,
			MaxLengthDiff: cfg.MaxLengthDiff,
		},
		sessionManager: sessionManager,
		players:        repositories.NewPlayerRepository(db, logger),
		events:         events,
		htmx:           htmx.New(),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

func loadCorpus(path string) (*corpus.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer func() {
		_ = f.Close()
	}()
	return corpus.Load(f)
}
