package corpus

import (
	"strconv"
	"strings"
)

// metroOrder mirrors the official line numbering, with the bis branches
// slotted after their parent line.
var metroOrder = map[string]float64{
	"METRO 1":    1,
	"METRO 2":    2,
	"METRO 3":    3,
	"METRO 3bis": 3.5,
	"METRO 4":    4,
	"METRO 5":    5,
	"METRO 6":    6,
	"METRO 7":    7,
	"METRO 7bis": 7.5,
	"METRO 8":    8,
	"METRO 9":    9,
	"METRO 10":   10,
	"METRO 11":   11,
	"METRO 12":   12,
	"METRO 13":   13,
	"METRO 14":   14,
}

var modeRank = map[Mode]float64{
	ModeMetro: 0,
	ModeRER:   100,
	ModeTram:  200,
	ModeTrain: 300,
	ModeOther: 400,
}

// LineOrder returns a sort key that places metro lines in their official
// order, then RER, trams, and trains, each sorted by their line suffix.
// Unknown lines (and streets, whose line is empty) sort last.
func LineOrder(line string) float64 {
	if line == "" {
		return 1 << 20
	}
	if order, ok := metroOrder[line]; ok {
		return order
	}

	rank := modeRank[LineMode(line)]
	suffix := line
	if i := strings.LastIndexByte(line, ' '); i >= 0 {
		suffix = line[i+1:]
	}
	if n, err := strconv.ParseFloat(suffix, 64); err == nil {
		return rank + n
	}
	if suffix != "" {
		// Lettered lines such as RER A..E.
		return rank + float64(suffix[0]-'A'+1)
	}
	return rank + 99
}

// LineLabel is the short label shown on line badges, e.g. "7b" for
// "METRO 7bis" and "A" for "RER A".
func LineLabel(line string) string {
	if line == "" {
		return ""
	}
	suffix := line
	if i := strings.LastIndexByte(line, ' '); i >= 0 {
		suffix = line[i+1:]
	}
	return strings.Replace(suffix, "bis", "b", 1)
}
