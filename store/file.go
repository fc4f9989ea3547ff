package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/padraicbc/bikeapi/models"
)

// FileStore keeps the whole document in a single JSON file, rewritten in full
// on every Save. Concurrent savers race (last write wins); single-writer
// deployments only.
type FileStore struct {
	path string
}

// NewFileStore opens a file-backed store, creating the file with empty
// collections if it does not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.Save(context.Background(), models.NewDatabase()); err != nil {
			return nil, fmt.Errorf("initializing %s: %w", path, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	return s, nil
}

// Load reads and decodes the whole document.
func (s *FileStore) Load(_ context.Context) (*models.Database, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	db := models.NewDatabase()
	if err := json.Unmarshal(raw, db); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	return db, nil
}

// Save serializes the whole document and overwrites the backing file.
func (s *FileStore) Save(_ context.Context, db *models.Database) error {
	raw, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}
