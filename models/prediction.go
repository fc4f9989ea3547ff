package models

import "github.com/uptrace/bun"

// PredictionRecord holds one prediction request and its model output.
// Input fields are stored raw, exactly as the client sent them; normalization
// happens only inside the feature vector fed to the model.
type PredictionRecord struct {
	bun.BaseModel `bun:"table:predictions,alias:p" json:"-"`

	ID         int64   `bun:"id,pk,autoincrement" json:"-"`
	RequestID  string  `bun:"request_id,notnull,unique" json:"request_id"`
	Prediction float64 `bun:"prediction,notnull" json:"prediction"`
	Season     float64 `bun:"season,notnull" json:"season"`
	Yr         float64 `bun:"yr,notnull" json:"yr"`
	Mnth       float64 `bun:"mnth,notnull" json:"mnth"`
	Hr         float64 `bun:"hr,notnull" json:"hr"`
	Weekday    float64 `bun:"weekday,notnull" json:"weekday"`
	Weathersit float64 `bun:"weathersit,notnull" json:"weathersit"`
	Temp       float64 `bun:"temp,notnull" json:"temp"`
	Hum        float64 `bun:"hum,notnull" json:"hum"`
	Windspeed  float64 `bun:"windspeed,notnull" json:"windspeed"`
	Holiday    bool    `bun:"holiday,notnull" json:"holiday"`
	Workingday bool    `bun:"workingday,notnull" json:"workingday"`
	Timestamp  string  `bun:"timestamp,notnull" json:"timestamp"`
}

// HistoryEntry is a PredictionRecord joined with its observed count, if any.
type HistoryEntry struct {
	PredictionRecord
	Actual *float64 `json:"actual"`
}
