package dedup

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
)

// FileStore keeps the seen set as a JSON array of ids in a single file
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed seen store at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the seen set from disk. A missing or unreadable file
// yields an empty set so a first run starts cleanly.
func (s *FileStore) Load(ctx context.Context) (map[string]struct{}, error) {
	seen := make(map[string]struct{})

	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[SeenStore] Could not read %s, starting empty: %v", s.path, err)
		}
		return seen, nil
	}

	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		log.Printf("[SeenStore] Could not parse %s, starting empty: %v", s.path, err)
		return seen, nil
	}

	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return seen, nil
}

// Save overwrites the file with the full set, writing to a temp file
// and renaming so a concurrent reader never sees a partial array
func (s *FileStore) Save(ctx context.Context, seen map[string]struct{}) error {
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	b, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal seen set: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write seen set: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename seen set: %w", err)
	}
	return nil
}
