package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_application_found_sorting(t *testing.T) {
	server := startTestServer(t)
	ctx := context.Background()

	submitGuess(t, server, "gare du nord")
	submitGuess(t, server, "rue de rennes")
	submitGuess(t, server, "rue de rivoli")

	tests := []struct {
		name string
		path string
		want []string
	}{
		{
			name: "recency keeps latest find first",
			path: "/",
			want: []string{"2001", "2002", "1010"},
		},
		{
			name: "name sorts alphabetically",
			path: "/?sort=name",
			want: []string{"1010", "2002", "2001"},
		},
		{
			name: "length puts the longest street first",
			path: "/?sort=length",
			want: []string{"2001", "2002", "1010"},
		},
		{
			name: "line groups stations by their line",
			path: "/?sort=line",
			want: []string{"1010", "2002", "2001"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := server.Client().GetDoc(ctx, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, foundIDs(doc))
		})
	}
}
