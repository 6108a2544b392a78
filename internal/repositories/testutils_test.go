package repositories_test

import (
	"context"
	"io"
	"testing"

	"github.com/bclaudel/paname/internal/sqlite"
	"github.com/bclaudel/paname/internal/testhelpers"
)

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()

	dbs, err := sqlite.NewDatabase(context.Background(), ":memory:", testhelpers.NewLogger(io.Discard))
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err = dbs.ReadWrite.Close(); err != nil {
			t.Fatal(err)
		}
		if err = dbs.ReadOnly.Close(); err != nil {
			t.Fatal(err)
		}
	})

	return dbs
}
