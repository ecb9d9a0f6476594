package seenstore

import (
	"encoding/json"
	"os"
	"sort"

	apperrors "camperwatch/pkg/errors"
)

// FileStore keeps the seen set as a JSON array of identifiers on disk.
type FileStore struct {
	Path string
}

// NewFileStore creates a file-backed store at path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the seen set from disk. An absent file yields an empty set
// with no error; a corrupt file yields an empty set plus a persistence
// error, degrading to "treat everything as new".
func (s *FileStore) Load() (map[string]struct{}, error) {
	set := make(map[string]struct{})

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return set, apperrors.NewPersistence("seenstore", "could not read seen file", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return set, apperrors.NewPersistence("seenstore", "could not parse seen file", err)
	}

	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set, nil
}

// Save overwrites the seen file. Identifiers are written sorted so the
// file diffs cleanly between runs.
func (s *FileStore) Save(ids map[string]struct{}) error {
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Strings(list)

	data, err := json.Marshal(list)
	if err != nil {
		return apperrors.NewPersistence("seenstore", "could not encode seen set", err)
	}

	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return apperrors.NewPersistence("seenstore", "could not write seen file", err)
	}
	return nil
}
