// Package store persists the prediction and actual-observation collections.
//
// The contract is deliberately coarse: implementations load and save the whole
// document. Callers own the read-modify-write sequencing and no atomicity is
// offered across concurrent callers (last save wins).
package store

import (
	"context"
	"fmt"

	"github.com/padraicbc/bikeapi/config"
	"github.com/padraicbc/bikeapi/models"
)

// Store reads and writes the full record document.
type Store interface {
	Load(ctx context.Context) (*models.Database, error)
	Save(ctx context.Context, db *models.Database) error
}

// Setup builds the store implementation selected by the config.
func Setup(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.StoreFile:
		return NewFileStore(cfg.DBFile)
	case config.StorePostgres:
		return NewPostgresStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
