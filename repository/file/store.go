package file

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Store persists whole-collection snapshots as JSON files, one file per
// collection. Every mutation rewrites the full file; a missing or unreadable
// file reads back as an empty collection rather than an error.
type Store struct {
	dir string
}

// NewStore creates the data directory if needed and returns a snapshot store
// rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Load reads a collection snapshot into out, which must be a pointer to a
// slice. Read and decode failures leave out untouched and report nothing: an
// absent or corrupt snapshot is indistinguishable from an empty collection.
func (s *Store) Load(collection string, out interface{}) error {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		var invalid *json.InvalidUnmarshalError
		if errors.As(err, &invalid) {
			return err
		}
		return nil
	}
	return nil
}

// Save overwrites the collection snapshot with the given records. The file
// holds indented JSON so snapshots stay hand-inspectable.
func (s *Store) Save(collection string, records interface{}) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(collection), data, 0o644)
}

// Ping reports whether the data directory is still reachable.
func (s *Store) Ping() error {
	_, err := os.Stat(s.dir)
	return err
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}
