// Package predictor wraps the serialized demand model for the serving path.
package predictor

import (
	"fmt"
	"math"

	"github.com/padraicbc/bikeapi/boost"
	"github.com/padraicbc/bikeapi/features"
)

// Regressor is the estimate producer the request handlers depend on.
// Implementations must be safe for concurrent use.
type Regressor interface {
	Predict(vector []float64) (float64, error)
}

// Predictor serves demand estimates from a model trained on a
// log1p-transformed target: raw model output is inverted with expm1 before
// being returned. Read-only after construction.
type Predictor struct {
	model *boost.Model
}

// New loads the model artifact once. Callers treat an error as fatal; the
// service cannot start without a model.
func New(path string) (*Predictor, error) {
	m, err := boost.LoadModel(path)
	if err != nil {
		return nil, fmt.Errorf("loading model artifact: %w", err)
	}
	if m.NumFeatures != features.VectorLen {
		return nil, fmt.Errorf("model expects %d features, service builds %d", m.NumFeatures, features.VectorLen)
	}
	return &Predictor{model: m}, nil
}

// Predict returns the estimated rental count for one feature vector, on the
// original (count) scale.
func (p *Predictor) Predict(vector []float64) (float64, error) {
	if len(vector) != features.VectorLen {
		return 0, fmt.Errorf("expected %d features, got %d", features.VectorLen, len(vector))
	}
	return math.Expm1(p.model.Predict(vector)), nil
}
