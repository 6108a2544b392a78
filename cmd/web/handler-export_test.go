package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	neturl "net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bclaudel/paname/internal/e2etest"
)

func exportProgressBody(t *testing.T, server *e2etest.Server) []byte {
	t.Helper()
	resp, err := server.Client().Get(context.Background(), "/export")
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return body
}

func Test_application_exportImportRoundTrip(t *testing.T) {
	server := startTestServer(t)
	ctx := context.Background()

	submitGuess(t, server, "rue de rivoli")
	submitGuess(t, server, "gare du nord")

	exported := exportProgressBody(t, server)
	var progress progressExport
	require.NoError(t, json.Unmarshal(exported, &progress))
	assert.NotEmpty(t, progress.CorpusVersion)
	assert.ElementsMatch(t, []int64{2001, 1010, 1020}, progress.Found)

	// Wipe the progress, then restore it from the export.
	_, err := server.Client().SubmitForm(ctx, "/", "/reset", neturl.Values{})
	require.NoError(t, err)

	var emptied progressExport
	require.NoError(t, json.Unmarshal(exportProgressBody(t, server), &emptied))
	assert.Empty(t, emptied.Found)

	resp, err := server.Client().Post(ctx, "/", "/import", "application/json", bytes.NewReader(exported))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The restored progress matches the export, order included.
	var restored progressExport
	require.NoError(t, json.Unmarshal(exportProgressBody(t, server), &restored))
	assert.Equal(t, progress.Found, restored.Found)
	assert.Equal(t, progress.CorpusVersion, restored.CorpusVersion)
}

func Test_application_importDropsUnknownIDs(t *testing.T) {
	server := startTestServer(t)
	ctx := context.Background()

	current := exportProgressBody(t, server)
	var progress progressExport
	require.NoError(t, json.Unmarshal(current, &progress))

	tampered, err := json.Marshal(progressExport{
		CorpusVersion: progress.CorpusVersion,
		Found:         []int64{2001, 999999, 2001, 1030},
	})
	require.NoError(t, err)

	resp, err := server.Client().Post(ctx, "/", "/import", "application/json", bytes.NewReader(tampered))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var restored progressExport
	require.NoError(t, json.Unmarshal(exportProgressBody(t, server), &restored))
	assert.Equal(t, []int64{2001, 1030}, restored.Found)
}
