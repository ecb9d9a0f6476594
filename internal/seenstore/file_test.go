package seenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "camperwatch/pkg/errors"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "seen_offers.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := tempStore(t)

	set, err := s.Load()
	assert.NoError(t, err)
	assert.Empty(t, set)
}

func TestLoadCorruptFile(t *testing.T) {
	s := tempStore(t)
	assert.NoError(t, os.WriteFile(s.Path, []byte("{not json"), 0o644))

	set, err := s.Load()
	assert.Error(t, err)
	assert.Empty(t, set, "corrupt state degrades to empty set")

	var runErr *apperrors.RunError
	assert.ErrorAs(t, err, &runErr)
	assert.Equal(t, apperrors.ErrorTypePersistence, runErr.Type)
	assert.False(t, runErr.IsFatal())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := tempStore(t)

	ids := map[string]struct{}{"B": {}, "A": {}, "C": {}}
	assert.NoError(t, s.Save(ids))

	// File holds a sorted JSON array
	data, err := os.ReadFile(s.Path)
	assert.NoError(t, err)
	var list []string
	assert.NoError(t, json.Unmarshal(data, &list))
	assert.Equal(t, []string{"A", "B", "C"}, list)

	loaded, err := s.Load()
	assert.NoError(t, err)
	assert.Equal(t, ids, loaded)
}

func TestPrune(t *testing.T) {
	seen := map[string]struct{}{"A": {}, "B": {}, "C": {}}
	current := map[string]struct{}{"A": {}, "C": {}}

	removed := Prune(seen, current)
	assert.Equal(t, []string{"B"}, removed)
	assert.Equal(t, map[string]struct{}{"A": {}, "C": {}}, seen)
}

func TestPruneNothingStale(t *testing.T) {
	seen := map[string]struct{}{"A": {}}
	current := map[string]struct{}{"A": {}, "B": {}}

	removed := Prune(seen, current)
	assert.Empty(t, removed)
	assert.Len(t, seen, 1)
}

func TestPruneEmptyFetch(t *testing.T) {
	seen := map[string]struct{}{"A": {}, "B": {}}

	removed := Prune(seen, map[string]struct{}{})
	assert.Equal(t, []string{"A", "B"}, removed)
	assert.Empty(t, seen)
}
