package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/padraicbc/bikeapi/config"
	"github.com/padraicbc/bikeapi/models"
)

// PostgresStore implements the same whole-document contract on top of
// PostgreSQL. Save upserts rows instead of rewriting a file, which narrows
// the concurrent-saver race but does not add read-modify-write isolation.
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore opens a connection using the provided config and ensures
// both tables exist.
func NewPostgresStore(ctx context.Context, cfg *config.Config) (*PostgresStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := createTables(ctx, db); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Load selects both collections in insertion order.
func (s *PostgresStore) Load(ctx context.Context) (*models.Database, error) {
	out := models.NewDatabase()

	if err := s.db.NewSelect().Model(&out.Predictions).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("loading predictions: %w", err)
	}
	if err := s.db.NewSelect().Model(&out.Actuals).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("loading actuals: %w", err)
	}

	return out, nil
}

// Save upserts every row of the document in one transaction. Predictions are
// immutable so conflicts are ignored; actuals are replaced by request_id.
func (s *PostgresStore) Save(ctx context.Context, db *models.Database) error {
	// Rows loaded earlier carry their serial ids; strip them so conflicts
	// resolve on request_id, not the primary key.
	preds := make([]models.PredictionRecord, len(db.Predictions))
	copy(preds, db.Predictions)
	for i := range preds {
		preds[i].ID = 0
	}
	actuals := make([]models.ActualRecord, len(db.Actuals))
	copy(actuals, db.Actuals)
	for i := range actuals {
		actuals[i].ID = 0
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save tx: %w", err)
	}
	defer tx.Rollback()

	if len(preds) > 0 {
		_, err = tx.NewInsert().Model(&preds).
			On("CONFLICT (request_id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("saving predictions: %w", err)
		}
	}

	if len(actuals) > 0 {
		_, err = tx.NewInsert().Model(&actuals).
			On("CONFLICT (request_id) DO UPDATE SET actual_rentals = EXCLUDED.actual_rentals, timestamp = EXCLUDED.timestamp").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("saving actuals: %w", err)
		}
	}

	return tx.Commit()
}

// createTables creates all tables in dependency order.
func createTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.PredictionRecord)(nil),
		(*models.ActualRecord)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	return nil
}
