package game

import (
	"sort"
	"strings"

	"github.com/bclaudel/paname/internal/corpus"
)

// Order is one of the user-selectable orderings of the found list.
type Order string

const (
	// OrderRecency keeps the stored order, most recently found first.
	OrderRecency Order = "order"
	// OrderName sorts alphabetically by display name.
	OrderName Order = "name"
	// OrderLength sorts longest street first.
	OrderLength Order = "length"
	// OrderLine sorts by line order, then approximately by geography within
	// a line so that consecutive stations end up adjacent.
	OrderLine Order = "line"
)

// ParseOrder maps a query-string value to an ordering, defaulting to recency.
func ParseOrder(s string) Order {
	switch Order(s) {
	case OrderName, OrderLength, OrderLine:
		return Order(s)
	default:
		return OrderRecency
	}
}

// FoundEntry is one row of the found list.
type FoundEntry struct {
	Entity corpus.Entity
	// Count is the number of consecutive entries collapsed into this row.
	Count int
}

// FoundList resolves the found set against the corpus, applies the ordering,
// and collapses consecutive entries sharing a display name and kind into one
// row. Ids missing from the corpus are skipped.
func FoundList(c *corpus.Corpus, fs *FoundSet, order Order) []FoundEntry {
	entities := make([]corpus.Entity, 0, fs.Len())
	for _, id := range fs.IDs() {
		if e, ok := c.ByID(id); ok {
			entities = append(entities, e)
		}
	}
	sortEntities(entities, order)
	return groupConsecutive(entities)
}

func sortEntities(entities []corpus.Entity, order Order) {
	switch order {
	case OrderName:
		sort.SliceStable(entities, func(i, j int) bool {
			return strings.Compare(entities[i].DisplayName(), entities[j].DisplayName()) < 0
		})
	case OrderLength:
		sort.SliceStable(entities, func(i, j int) bool {
			return entities[i].Length > entities[j].Length
		})
	case OrderLine:
		sort.SliceStable(entities, func(i, j int) bool {
			oi, oj := corpus.LineOrder(entities[i].Line), corpus.LineOrder(entities[j].Line)
			if oi != oj {
				return oi < oj
			}
			return spatialKey(entities[i]) < spatialKey(entities[j])
		})
	case OrderRecency:
		// Stored order is already most recent first.
	}
}

// spatialKey is a coarse one-dimensional projection used only to keep nearby
// stations of a line adjacent; streets fall back to their name.
func spatialKey(e corpus.Entity) string {
	if e.Lon != 0 || e.Lat != 0 {
		// Weighting longitude dominates, which roughly follows the
		// west-to-east run of most lines.
		return fixedWidth(100*e.Lon + e.Lat)
	}
	return e.DisplayName()
}

func fixedWidth(f float64) string {
	// Keys compare lexically, so render the number at a fixed width. Paris
	// coordinates are all positive, small, and well within four integer
	// digits.
	var b strings.Builder
	n := int64(f * 1e6)
	for shift := int64(1e12); shift >= 1; shift /= 10 {
		b.WriteByte(byte('0' + (n/shift)%10))
	}
	return b.String()
}

func groupConsecutive(entities []corpus.Entity) []FoundEntry {
	var rows []FoundEntry
	for _, e := range entities {
		if n := len(rows); n > 0 {
			prev := rows[n-1].Entity
			if prev.DisplayName() == e.DisplayName() && prev.Kind == e.Kind {
				rows[n-1].Count++
				continue
			}
		}
		rows = append(rows, FoundEntry{Entity: e, Count: 1})
	}
	return rows
}
