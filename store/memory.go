package store

import (
	"context"

	"github.com/padraicbc/bikeapi/models"
)

// MemoryStore is an in-memory Store used by tests. It deep-copies on both
// Load and Save so callers cannot mutate the stored document in place.
type MemoryStore struct {
	db *models.Database
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{db: models.NewDatabase()}
}

func (s *MemoryStore) Load(_ context.Context) (*models.Database, error) {
	return copyDatabase(s.db), nil
}

func (s *MemoryStore) Save(_ context.Context, db *models.Database) error {
	s.db = copyDatabase(db)
	return nil
}

func copyDatabase(db *models.Database) *models.Database {
	out := models.NewDatabase()
	out.Predictions = append(out.Predictions, db.Predictions...)
	out.Actuals = append(out.Actuals, db.Actuals...)
	return out
}
