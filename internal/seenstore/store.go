package seenstore

import "sort"

// Store persists the set of offer identifiers that have been fully
// delivered to every configured chat. Implementations read and write
// the set wholesale; there is no incremental append.
type Store interface {
	// Load returns the persisted set. A missing or unreadable state is
	// returned as an empty set together with the underlying error so the
	// caller can log and continue.
	Load() (map[string]struct{}, error)

	// Save overwrites the persisted set
	Save(ids map[string]struct{}) error
}

// Prune removes identifiers from seen that are absent from the current
// fetch and returns them sorted. Stale entries come from offers that
// expired upstream; pruning every run keeps the set from growing
// without bound.
func Prune(seen map[string]struct{}, currentIDs map[string]struct{}) []string {
	var removed []string
	for id := range seen {
		if _, ok := currentIDs[id]; !ok {
			removed = append(removed, id)
			delete(seen, id)
		}
	}
	sort.Strings(removed)
	return removed
}
