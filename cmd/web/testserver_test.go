package main

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bclaudel/paname/internal/e2etest"
)

// testLookupEnv configures the server for tests: a dynamically allocated port,
// an in-memory database, and the small dataset under testdata.
func testLookupEnv(key string) (string, bool) {
	switch key {
	case "PANAME_ADDR":
		return "localhost:0", true
	case "PANAME_PPROF_PORT":
		return ":0", true
	case "PANAME_SQLITE_URL":
		return ":memory:", true
	case "PANAME_DATASET_PATH":
		return "./testdata/dataset.geojson", true
	default:
		return "", false
	}
}

// startTestServer starts the server with the test configuration and returns it
// together with a cookie-jarred client, so consecutive requests share the same
// player session.
func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	server, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv, run)
	require.NoError(t, err)
	return server
}
