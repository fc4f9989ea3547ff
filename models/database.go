package models

// Database is the whole persisted document: two ordered, append-mostly
// collections. Actuals additionally support in-place replacement by request_id.
type Database struct {
	Predictions []PredictionRecord `json:"predictions"`
	Actuals     []ActualRecord     `json:"actuals"`
}

// NewDatabase returns an empty document with both collections initialized,
// so it serializes as {"predictions":[],"actuals":[]} rather than nulls.
func NewDatabase() *Database {
	return &Database{
		Predictions: []PredictionRecord{},
		Actuals:     []ActualRecord{},
	}
}

// FindActual returns the first actual recorded for the given request id, or nil.
func (d *Database) FindActual(requestID string) *ActualRecord {
	for i := range d.Actuals {
		if d.Actuals[i].RequestID == requestID {
			return &d.Actuals[i]
		}
	}
	return nil
}

// UpsertActual replaces the actual stored for rec.RequestID, or appends it.
// At most one actual per request id survives.
func (d *Database) UpsertActual(rec ActualRecord) {
	for i := range d.Actuals {
		if d.Actuals[i].RequestID == rec.RequestID {
			d.Actuals[i] = rec
			return
		}
	}
	d.Actuals = append(d.Actuals, rec)
}
