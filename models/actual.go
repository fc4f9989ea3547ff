package models

import "github.com/uptrace/bun"

// ActualRecord holds an observed rental count reported after the fact.
// RequestID references a PredictionRecord but is not a strict foreign key:
// observations for unknown identifiers are accepted.
type ActualRecord struct {
	bun.BaseModel `bun:"table:actuals,alias:a" json:"-"`

	ID            int64   `bun:"id,pk,autoincrement" json:"-"`
	RequestID     string  `bun:"request_id,notnull,unique" json:"request_id"`
	ActualRentals float64 `bun:"actual_rentals,notnull" json:"actual_rentals"`
	Timestamp     string  `bun:"timestamp,notnull" json:"timestamp"`
}
