package game

import (
	"github.com/bclaudel/paname/internal/corpus"
)

// Migrate carries a player's progress onto a replaced corpus. Recall
// progress, not ids, is what the player earned: when a dataset revision
// renumbers or multiplies entities, every entity of the new corpus whose name
// the player had already found stays found.
//
// For each legacy id, most recent first, the new corpus is searched for
// entities with exactly the same name as the legacy entity; those are kept,
// followed by the legacy id itself when it survived into the new corpus.
// Legacy ids whose name resolves to nothing are dropped. The result is
// deduplicated and preserves recency order.
func Migrate(legacy []int64, legacyName func(int64) (string, bool), next *corpus.Corpus) *FoundSet {
	byName := make(map[string][]int64, next.Len())
	for _, e := range next.Entities() {
		byName[e.Name] = append(byName[e.Name], e.ID)
	}

	fs := NewFoundSet(nil)
	for _, id := range legacy {
		name, ok := legacyName(id)
		if !ok {
			// The legacy dataset no longer resolves the id. Keep it anyway if
			// the new corpus still knows it.
			if next.Contains(id) {
				fs.append(id)
			}
			continue
		}
		for _, successor := range byName[name] {
			if successor == id {
				continue
			}
			fs.append(successor)
		}
		if next.Contains(id) {
			fs.append(id)
		}
	}
	return fs
}
