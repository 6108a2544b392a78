// Package search builds a fuzzy index over the corpus's name fields and
// decides which hits count as a correctly recalled answer. Normalization is
// applied symmetrically at index and query time; the acceptance policy then
// anchors matches to both ends of the field so that partial fragments do not
// score.
package search

import (
	"sort"

	"github.com/hbollon/go-edlib"

	"github.com/bclaudel/paname/internal/corpus"
	"github.com/bclaudel/paname/internal/textnorm"
)

// Options are the fuzzy matching tuning parameters. They are configuration,
// not contract: revisions of the game have shipped with slightly different
// values.
type Options struct {
	// Threshold is the highest score that still counts as a match.
	// 0 requires a perfect match at the start of the field.
	Threshold float64
	// Distance is the number of characters over which the positional
	// penalty reaches 1. A small value keeps matches near the field start.
	Distance int
	// MinMatchLength discards queries and aligned runs shorter than this.
	MinMatchLength int
}

// DefaultOptions returns the tuning the game ships with.
func DefaultOptions() Options {
	return Options{
		Threshold:      0.15,
		Distance:       10,
		MinMatchLength: 2,
	}
}

// Field names which entity name field a match aligned against.
type Field string

const (
	FieldLongName  Field = "long_name"
	FieldShortName Field = "short_name"
	FieldName      Field = "name"
)

// FieldMatch is one name field that matched the query.
type FieldMatch struct {
	Field Field
	// Value is the normalized field text the intervals index into.
	Value     string
	Score     float64
	Intervals []Interval
}

// Candidate is one scored, position-annotated search hit.
type Candidate struct {
	Entity corpus.Entity
	// Score is the best field score. 0 is perfect, lower is better.
	Score   float64
	Matches []FieldMatch
}

type indexEntry struct {
	entity int
	field  Field
	text   string
}

// Index is a searchable index over the corpus's name fields. Build it once
// per corpus and rebuild it only when the corpus is replaced.
type Index struct {
	opts     Options
	entities []corpus.Entity
	entries  []indexEntry
}

// NewIndex indexes the normalized long, short, and display names of every
// entity. Geometry and every other attribute are opaque to the index.
func NewIndex(c *corpus.Corpus, opts Options) *Index {
	entities := c.Entities()
	ix := Index{
		opts:     opts,
		entities: entities,
		entries:  make([]indexEntry, 0, len(entities)*3),
	}
	for i, e := range entities {
		ix.addEntry(i, FieldLongName, e.LongName)
		ix.addEntry(i, FieldShortName, e.ShortName)
		ix.addEntry(i, FieldName, e.Name)
	}
	return &ix
}

func (ix *Index) addEntry(entity int, field Field, value string) {
	normalized := textnorm.Normalize(value)
	if normalized == "" {
		return
	}
	ix.entries = append(ix.entries, indexEntry{entity: entity, field: field, text: normalized})
}

// Search returns the candidates matching query, best score first. The query
// is normalized with the same pipeline as the indexed names. Queries shorter
// than the minimum match length never match. Searching an empty index
// returns nil.
func (ix *Index) Search(query string) []Candidate {
	pattern := textnorm.Normalize(query)
	if len(pattern) < ix.opts.MinMatchLength {
		return nil
	}

	byEntity := make(map[int]*Candidate)
	order := make([]int, 0, 8)
	for _, entry := range ix.entries {
		matched, score, intervals := ix.matchEntry(entry.text, pattern)
		if !matched || len(intervals) == 0 {
			continue
		}

		candidate, ok := byEntity[entry.entity]
		if !ok {
			candidate = &Candidate{
				Entity:  ix.entities[entry.entity],
				Score:   score,
				Matches: nil,
			}
			byEntity[entry.entity] = candidate
			order = append(order, entry.entity)
		}
		if score < candidate.Score {
			candidate.Score = score
		}
		candidate.Matches = append(candidate.Matches, FieldMatch{
			Field:     entry.field,
			Value:     entry.text,
			Score:     score,
			Intervals: intervals,
		})
	}

	results := make([]Candidate, 0, len(order))
	for _, entity := range order {
		results = append(results, *byEntity[entity])
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	return results
}

// matchEntry runs bitap for patterns a machine word can track and falls back
// to plain Levenshtein tolerance for longer ones, where the whole field is
// the aligned interval.
func (ix *Index) matchEntry(text, pattern string) (bool, float64, []Interval) {
	if len(pattern) <= maxBitapLength {
		return bitapSearch(text, pattern, ix.opts)
	}

	distance := edlib.LevenshteinDistance(text, pattern)
	maxErrors := int(ix.opts.Threshold * float64(len(pattern)))
	if distance > maxErrors {
		return false, 1, nil
	}
	score := float64(distance) / float64(len(pattern))
	return true, score, []Interval{{Start: 0, End: len(text) - 1}}
}
