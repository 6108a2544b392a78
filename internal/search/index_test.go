package search_test

import (
	"testing"

	"github.com/bclaudel/paname/internal/corpus"
	"github.com/bclaudel/paname/internal/search"
	"github.com/bclaudel/paname/internal/textnorm"
	"github.com/stretchr/testify/require"
)

func testCorpus() *corpus.Corpus {
	return corpus.New([]corpus.Entity{
		{ID: 2001, Name: "Rue de Rivoli", LongName: "Rue de Rivoli", ShortName: "R. de Rivoli", Kind: "rue", Length: 3.0},
		{ID: 2002, Name: "Rue de Rennes", LongName: "Rue de Rennes", Kind: "rue", Length: 1.0},
		{ID: 2003, Name: "Place de la Bastille", LongName: "Place de la Bastille", Kind: "place"},
		{ID: 1010, Name: "Gare du Nord", Kind: corpus.KindMetro, Line: "METRO 4"},
		{ID: 1020, Name: "Gare du Nord", Kind: corpus.KindMetro, Line: "METRO 5"},
		{ID: 1030, Name: "Saint-Placide", Kind: corpus.KindMetro, Line: "METRO 4"},
	})
}

func TestIndex_Search(t *testing.T) {
	ix := search.NewIndex(testCorpus(), search.DefaultOptions())

	tests := []struct {
		name    string
		query   string
		wantIDs []int64
	}{
		{
			name:    "exact name",
			query:   "rue de rivoli",
			wantIDs: []int64{2001},
		},
		{
			name:    "accented query",
			query:   "Rue de Rivolí",
			wantIDs: []int64{2001},
		},
		{
			name:    "shared name hits every entity",
			query:   "gare du nord",
			wantIDs: []int64{1010, 1020},
		},
		{
			name:    "abbreviated saint",
			query:   "st-placide",
			wantIDs: []int64{1030},
		},
		{
			name:    "too short",
			query:   "r",
			wantIDs: nil,
		},
		{
			name:    "no match",
			query:   "montparnasse",
			wantIDs: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIDs []int64
			for _, c := range ix.Search(tt.query) {
				gotIDs = append(gotIDs, c.Entity.ID)
			}
			require.ElementsMatch(t, tt.wantIDs, gotIDs)
		})
	}
}

// Every indexed name must find its own entity when queried with its
// normalized form. If this breaks, normalization has diverged between index
// time and query time.
func TestIndex_searchNormalizationSymmetry(t *testing.T) {
	c := testCorpus()
	ix := search.NewIndex(c, search.DefaultOptions())

	for _, e := range c.Entities() {
		query := textnorm.Normalize(e.Name)
		results := ix.Search(query)
		var ids []int64
		for _, candidate := range results {
			ids = append(ids, candidate.Entity.ID)
		}
		require.Contains(t, ids, e.ID, "entity %d %q not found via its own name", e.ID, e.Name)
	}
}

func TestIndex_Search_candidateShape(t *testing.T) {
	ix := search.NewIndex(testCorpus(), search.DefaultOptions())

	results := ix.Search("rue de rivoli")
	require.NotEmpty(t, results)

	best := results[0]
	require.Equal(t, int64(2001), best.Entity.ID)
	require.Zero(t, best.Score)
	require.NotEmpty(t, best.Matches)
	for _, m := range best.Matches {
		require.NotEmpty(t, m.Value)
		require.NotEmpty(t, m.Intervals)
	}
	// The long name and display name both normalize to the query, so both
	// fields align.
	fields := make(map[search.Field]bool)
	for _, m := range best.Matches {
		fields[m.Field] = true
	}
	require.True(t, fields[search.FieldLongName])
	require.True(t, fields[search.FieldName])
}

func TestIndex_Search_emptyCorpus(t *testing.T) {
	ix := search.NewIndex(corpus.New(nil), search.DefaultOptions())
	require.Empty(t, ix.Search("rue de rivoli"))
}

func TestIndex_Search_bestScoreFirst(t *testing.T) {
	ix := search.NewIndex(testCorpus(), search.DefaultOptions())

	// One typo in Rennes still matches, but scores worse than the exact hit
	// would. Ordering must be best-first.
	results := ix.Search("rue de renes")
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		require.LessOrEqual(t, results[i-1].Score, results[i].Score)
	}
	require.Equal(t, int64(2002), results[0].Entity.ID)
}
