package search

import "github.com/bclaudel/paname/internal/textnorm"

// Policy decides which search candidates count as a genuinely recalled
// answer. Raw fuzzy relevance alone is too permissive: any field containing
// the query as a substring would score, rewarding minimal effort. The policy
// requires one aligned run to be anchored near both ends of the field, which
// approximates "the player typed the whole name".
type Policy struct {
	// StartOffset is the exclusive bound on how far from the field start an
	// anchored run may begin.
	StartOffset int
	// EndOffset is the exclusive bound on how many characters may remain
	// after the anchored run ends.
	EndOffset int
	// MaxLengthDiff is the exclusive bound on the absolute difference
	// between field length and query length. It guards against a long field
	// whose fragments happen to touch both ends. Zero disables the check.
	MaxLengthDiff int
}

// DefaultPolicy returns the anchoring offsets the game ships with.
func DefaultPolicy() Policy {
	return Policy{
		StartOffset:   2,
		EndOffset:     2,
		MaxLengthDiff: 4,
	}
}

// Accept filters candidates down to the ids newly recalled by this query.
// Already-found ids are dropped first. Every surviving id is returned, not
// just the best one: a single query legitimately matches several entities
// sharing a name, such as two endpoints of one segment or a station and its
// renamed predecessor. An empty result is a routine rejection, not an error.
//
// Accept is pure given its inputs and never mutates the found set.
func (p Policy) Accept(query string, candidates []Candidate, alreadyFound func(int64) bool) []int64 {
	queryLen := len(textnorm.Normalize(query))

	var accepted []int64
	seen := make(map[int64]struct{}, len(candidates))
	for _, candidate := range candidates {
		id := candidate.Entity.ID
		if alreadyFound != nil && alreadyFound(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		if !p.anchored(candidate, queryLen) {
			continue
		}
		seen[id] = struct{}{}
		accepted = append(accepted, id)
	}
	return accepted
}

// anchored reports whether some field match covers the field from near its
// start to near its end.
func (p Policy) anchored(candidate Candidate, queryLen int) bool {
	for _, match := range candidate.Matches {
		if len(match.Intervals) == 0 {
			continue
		}
		fieldLen := len(match.Value)
		first := match.Intervals[0]
		last := match.Intervals[len(match.Intervals)-1]

		if first.Start >= p.StartOffset {
			continue
		}
		if fieldLen-last.End >= p.EndOffset {
			continue
		}
		if p.MaxLengthDiff > 0 && abs(fieldLen-queryLen) >= p.MaxLengthDiff {
			continue
		}
		return true
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
