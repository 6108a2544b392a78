package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitapSearch(t *testing.T) {
	opts := DefaultOptions()

	tests := []struct {
		name        string
		text        string
		pattern     string
		wantMatch   bool
		wantPerfect bool
	}{
		{
			name:        "exact match",
			text:        "ruederivoli",
			pattern:     "ruederivoli",
			wantMatch:   true,
			wantPerfect: true,
		},
		{
			name:      "single typo",
			text:      "ruederivoli",
			pattern:   "ruedarivoli",
			wantMatch: true,
		},
		{
			name:      "mid-string fragment is penalized by position",
			text:      "placedelabastille",
			pattern:   "bastille",
			wantMatch: false,
		},
		{
			name:      "prefix match near start",
			text:      "ruederivoli",
			pattern:   "ruederivol",
			wantMatch: true,
		},
		{
			name:      "unrelated text",
			text:      "ruederivoli",
			pattern:   "montparnasse",
			wantMatch: false,
		},
		{
			name:      "empty text",
			text:      "",
			pattern:   "rue",
			wantMatch: false,
		},
		{
			name:      "empty pattern",
			text:      "ruederivoli",
			pattern:   "",
			wantMatch: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, score, intervals := bitapSearch(tt.text, tt.pattern, opts)
			require.Equal(t, tt.wantMatch, matched)
			if tt.wantPerfect {
				require.Zero(t, score)
			}
			if matched {
				require.NotEmpty(t, intervals)
				for _, iv := range intervals {
					require.GreaterOrEqual(t, iv.Start, 0)
					require.Less(t, iv.End, len(tt.text))
					require.GreaterOrEqual(t, iv.Span(), opts.MinMatchLength)
				}
			}
		})
	}
}

func TestBitapSearch_intervalsCoverWholeField(t *testing.T) {
	matched, _, intervals := bitapSearch("garedunord", "garedunord", DefaultOptions())
	require.True(t, matched)
	require.Equal(t, []Interval{{Start: 0, End: 9}}, intervals)
}

func TestMaskIntervals(t *testing.T) {
	tests := []struct {
		name      string
		mask      []bool
		minLength int
		want      []Interval
	}{
		{
			name:      "empty mask",
			mask:      nil,
			minLength: 2,
			want:      nil,
		},
		{
			name:      "short runs dropped",
			mask:      []bool{true, false, true, false, true},
			minLength: 2,
			want:      nil,
		},
		{
			name:      "run in the middle",
			mask:      []bool{false, true, true, true, false},
			minLength: 2,
			want:      []Interval{{Start: 1, End: 3}},
		},
		{
			name:      "run to the end",
			mask:      []bool{false, false, true, true},
			minLength: 2,
			want:      []Interval{{Start: 2, End: 3}},
		},
		{
			name:      "multiple runs",
			mask:      []bool{true, true, false, true, true, true},
			minLength: 2,
			want:      []Interval{{Start: 0, End: 1}, {Start: 3, End: 5}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, maskIntervals(tt.mask, tt.minLength))
		})
	}
}
