package game

import (
	"github.com/bclaudel/paname/internal/corpus"
)

// LineStats is the per-line progress of one transit line.
type LineStats struct {
	Line  string      `json:"line"`
	Label string      `json:"label"`
	Mode  corpus.Mode `json:"mode"`
	Found int         `json:"found"`
	Total int         `json:"total"`
}

// ModeStats aggregates line progress per transport mode (metro, RER, ...).
type ModeStats struct {
	Mode  corpus.Mode `json:"mode"`
	Found int         `json:"found"`
	Total int         `json:"total"`
}

// Stats is the player's progress, expressed against the corpus totals.
type Stats struct {
	// Found is the number of found entities of any kind.
	Found int `json:"found"`
	// StreetLength is the summed length in kilometers of the found streets,
	// and StreetLengthPct its share of the corpus total. Finding every street
	// yields exactly 100 regardless of rounding in the source data.
	StreetLength    float64 `json:"street_length"`
	StreetLengthPct float64 `json:"street_length_pct"`
	// Stations and StationsPct count found stations against the corpus total.
	Stations    int     `json:"stations"`
	StationsPct float64 `json:"stations_pct"`
	// Lines is the per-line progress in display order, Modes the same
	// progress rolled up per transport mode.
	Lines []LineStats `json:"lines"`
	Modes []ModeStats `json:"modes"`
}

// ComputeStats derives the progress statistics for the found set. Ids absent
// from the corpus contribute nothing; they can linger in stored progress
// between a dataset change and migration.
func ComputeStats(c *corpus.Corpus, fs *FoundSet) Stats {
	totals := c.Totals()
	stats := Stats{
		Found: 0,
		Lines: make([]LineStats, 0, len(totals.StationsPerLine)),
	}

	foundPerLine := make(map[string]int, len(totals.StationsPerLine))
	for _, id := range fs.IDs() {
		e, ok := c.ByID(id)
		if !ok {
			continue
		}
		stats.Found++
		if e.IsStation() {
			stats.Stations++
			if e.Line != "" {
				foundPerLine[e.Line]++
			}
		} else {
			stats.StreetLength += e.Length
		}
	}

	if totals.Length > 0 {
		stats.StreetLengthPct = 100 * stats.StreetLength / totals.Length
	}
	if totals.Stations > 0 {
		stats.StationsPct = 100 * float64(stats.Stations) / float64(totals.Stations)
	}
	for _, line := range c.Lines() {
		stats.Lines = append(stats.Lines, LineStats{
			Line:  line,
			Label: corpus.LineLabel(line),
			Mode:  corpus.LineMode(line),
			Found: foundPerLine[line],
			Total: totals.StationsPerLine[line],
		})
	}

	// Line order already groups lines of a mode together, so the roll-up
	// keeps the same display order.
	modeIndex := map[corpus.Mode]int{}
	for _, line := range stats.Lines {
		i, ok := modeIndex[line.Mode]
		if !ok {
			i = len(stats.Modes)
			modeIndex[line.Mode] = i
			stats.Modes = append(stats.Modes, ModeStats{Mode: line.Mode, Found: 0, Total: 0})
		}
		stats.Modes[i].Found += line.Found
		stats.Modes[i].Total += line.Total
	}
	return stats
}
