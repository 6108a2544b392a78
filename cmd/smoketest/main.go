// Command smoketest exercises a deployed instance end to end: it loads the
// game page and plays one guess through an anonymous session. Progress is
// session-scoped, so the run leaves no trace behind.
package main

import (
	"context"
	"log/slog"
	neturl "net/url"
	"os"
	"time"

	"github.com/bclaudel/paname/internal/e2etest"
	"github.com/bclaudel/paname/internal/errors"
	"github.com/bclaudel/paname/internal/logging"
)

// smokeGuess is a street that exists in every corpus snapshot.
const smokeGuess = "rue de rivoli"

func testGame(client *e2etest.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	if err := client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return errors.Wrap(err, "wait for ready")
	}

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "load game page")
	}
	if doc.Find("form[action='/guess']").Length() != 1 {
		return errors.New("guess form not found on game page")
	}

	doc, err = client.SubmitForm(ctx, "/", "/guess", neturl.Values{"guess": []string{smokeGuess}})
	if err != nil {
		return errors.Wrap(err, "submit guess")
	}
	if doc.Find("#found-list li[data-entity-id]").Length() == 0 {
		return errors.New("guess was not credited", slog.String("guess", smokeGuess))
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = testGame(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error playing the game", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
