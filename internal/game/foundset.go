// Package game holds the rules around a player's progress: the ordered set of
// found entities, the statistics derived from it, the orderings of the found
// list, and the migration of progress onto a replaced corpus.
package game

// FoundSet is the ordered set of entity ids a player has recalled, most
// recent first. It is a value to be loaded from and stored to the
// repository around each request; it is not safe for concurrent use.
type FoundSet struct {
	ids  []int64
	seen map[int64]struct{}
}

// NewFoundSet builds a found set from ids in most-recent-first order,
// dropping duplicates while keeping each id's first (most recent) position.
func NewFoundSet(ids []int64) *FoundSet {
	fs := FoundSet{
		ids:  make([]int64, 0, len(ids)),
		seen: make(map[int64]struct{}, len(ids)),
	}
	for _, id := range ids {
		fs.append(id)
	}
	return &fs
}

func (fs *FoundSet) append(id int64) bool {
	if _, ok := fs.seen[id]; ok {
		return false
	}
	fs.seen[id] = struct{}{}
	fs.ids = append(fs.ids, id)
	return true
}

// Add prepends the newly accepted ids, keeping their relative order, and
// reports how many were actually new. Re-adding present ids changes nothing,
// so accepting the same guess twice is harmless.
func (fs *FoundSet) Add(ids ...int64) int {
	var fresh []int64
	for _, id := range ids {
		if _, ok := fs.seen[id]; ok {
			continue
		}
		fs.seen[id] = struct{}{}
		fresh = append(fresh, id)
	}
	if len(fresh) == 0 {
		return 0
	}
	fs.ids = append(fresh, fs.ids...)
	return len(fresh)
}

// Contains reports membership.
func (fs *FoundSet) Contains(id int64) bool {
	_, ok := fs.seen[id]
	return ok
}

// IDs returns the ids most recent first. Callers must not mutate the
// returned slice.
func (fs *FoundSet) IDs() []int64 {
	return fs.ids
}

// Len returns the number of found entities.
func (fs *FoundSet) Len() int {
	return len(fs.ids)
}

// Reset empties the set.
func (fs *FoundSet) Reset() {
	fs.ids = fs.ids[:0]
	clear(fs.seen)
}
