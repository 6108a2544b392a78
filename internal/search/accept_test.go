package search_test

import (
	"testing"

	"github.com/bclaudel/paname/internal/search"
	"github.com/stretchr/testify/require"
)

// guess runs a query through the whole pipeline the guess handler uses:
// search, then acceptance against the given found set.
func guess(t *testing.T, query string, found ...int64) []int64 {
	t.Helper()

	ix := search.NewIndex(testCorpus(), search.DefaultOptions())
	foundSet := make(map[int64]struct{}, len(found))
	for _, id := range found {
		foundSet[id] = struct{}{}
	}
	return search.DefaultPolicy().Accept(query, ix.Search(query), func(id int64) bool {
		_, ok := foundSet[id]
		return ok
	})
}

func TestPolicy_Accept(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		found   []int64
		wantIDs []int64
	}{
		{
			name:    "full name accepted",
			query:   "place de la bastille",
			wantIDs: []int64{2003},
		},
		{
			name:    "fragment of a longer name rejected",
			query:   "bastille",
			wantIDs: nil,
		},
		{
			name:    "leading word alone rejected",
			query:   "place",
			wantIDs: nil,
		},
		{
			name:    "typo within tolerance accepted",
			query:   "rue de rivolli",
			wantIDs: []int64{2001},
		},
		{
			name:    "shared name accepts every entity",
			query:   "gare du nord",
			wantIDs: []int64{1010, 1020},
		},
		{
			name:    "already found entities are skipped",
			query:   "gare du nord",
			found:   []int64{1010},
			wantIDs: []int64{1020},
		},
		{
			name:    "fully found name yields nothing",
			query:   "gare du nord",
			found:   []int64{1010, 1020},
			wantIDs: nil,
		},
		{
			name:    "repeating an accepted guess yields nothing",
			query:   "place de la bastille",
			found:   []int64{2003},
			wantIDs: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ElementsMatch(t, tt.wantIDs, guess(t, tt.query, tt.found...))
		})
	}
}

// Accept must not depend on the found set's contents beyond membership: the
// same query against the same candidates always yields the same ids.
func TestPolicy_Accept_deterministic(t *testing.T) {
	first := guess(t, "gare du nord")
	for i := 0; i < 5; i++ {
		require.Equal(t, first, guess(t, "gare du nord"))
	}
}

func TestPolicy_Accept_nilAlreadyFound(t *testing.T) {
	ix := search.NewIndex(testCorpus(), search.DefaultOptions())
	got := search.DefaultPolicy().Accept("rue de rennes", ix.Search("rue de rennes"), nil)
	require.Equal(t, []int64{2002}, got)
}

func TestPolicy_Accept_lengthGuard(t *testing.T) {
	// A candidate whose aligned runs touch both ends of a much longer field
	// must still be rejected by the length guard.
	candidates := []search.Candidate{{
		Entity: testCorpus().Entities()[2],
		Score:  0.1,
		Matches: []search.FieldMatch{{
			Field:     search.FieldName,
			Value:     "placedelabastille",
			Score:     0.1,
			Intervals: []search.Interval{{Start: 0, End: 4}, {Start: 14, End: 16}},
		}},
	}}
	require.Empty(t, search.DefaultPolicy().Accept("place", candidates, nil))

	// Disabling the guard turns the same candidate into an acceptance.
	relaxed := search.DefaultPolicy()
	relaxed.MaxLengthDiff = 0
	require.Equal(t, []int64{2003}, relaxed.Accept("place", candidates, nil))
}
