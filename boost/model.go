// Package boost implements gradient-boosted regression trees with squared-error
// loss, plus the cross-validation and grid-search machinery used to fit them.
//
// The serialized model is the artifact consumed by the prediction service; it
// is produced offline by cmd/train and never mutated afterwards.
package boost

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Params are the tunable hyperparameters of the booster.
type Params struct {
	Trees        int     `json:"n_estimators"`
	MaxDepth     int     `json:"max_depth"`
	LearningRate float64 `json:"learning_rate"`
	RegLambda    float64 `json:"reg_lambda"`
	RegAlpha     float64 `json:"reg_alpha"`
}

// Node is one node of a regression tree. Interior nodes route on
// x[Feature] < Threshold; leaves carry the weight added to the prediction.
type Node struct {
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Leaf      bool    `json:"leaf,omitempty"`
	Value     float64 `json:"value,omitempty"`
}

// Tree is a flat array-of-nodes regression tree; node 0 is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t *Tree) predict(x []float64) float64 {
	i := 0
	for !t.Nodes[i].Leaf {
		n := t.Nodes[i]
		if x[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

// Model is a fitted ensemble. Predictions are on the same (possibly
// transformed) scale as the training target.
type Model struct {
	BaseScore    float64   `json:"base_score"`
	LearningRate float64   `json:"learning_rate"`
	NumFeatures  int       `json:"num_features"`
	Trees        []*Tree   `json:"trees"`
	Params       Params    `json:"params"`
	TrainedAt    time.Time `json:"trained_at"`
}

// Predict returns the ensemble output for one feature vector.
func (m *Model) Predict(x []float64) float64 {
	out := m.BaseScore
	for _, t := range m.Trees {
		out += m.LearningRate * t.predict(x)
	}
	return out
}

// Save writes the model artifact as JSON.
func (m *Model) Save(path string) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadModel reads a model artifact written by Save.
func LoadModel(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m := &Model{}
	if err := json.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(m.Trees) == 0 {
		return nil, fmt.Errorf("model %s has no trees", path)
	}
	return m, nil
}
