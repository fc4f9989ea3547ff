package predictor

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/bikeapi/boost"
	"github.com/padraicbc/bikeapi/features"
)

func trainedArtifact(t *testing.T) string {
	t.Helper()

	// Tiny log-scale model over 13 features; the values don't matter, only
	// that the artifact round-trips and the inverse transform is applied.
	var X [][]float64
	var y []float64
	for i := 0; i < 60; i++ {
		row := make([]float64, features.VectorLen)
		row[3] = float64(i % 24) // hr
		row[6] = float64(i%10) / 10
		X = append(X, row)
		y = append(y, float64(10+i%24*5))
	}

	m, err := boost.Train(X, boost.Log1p(y), boost.Params{Trees: 20, MaxDepth: 3, LearningRate: 0.3, RegLambda: 1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, m.Save(path))
	return path
}

func TestNewMissingArtifactFails(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestPredictAppliesInverseTransform(t *testing.T) {
	path := trainedArtifact(t)

	p, err := New(path)
	require.NoError(t, err)

	m, err := boost.LoadModel(path)
	require.NoError(t, err)

	vec := make([]float64, features.VectorLen)
	vec[3] = 10

	got, err := p.Predict(vec)
	require.NoError(t, err)
	assert.InDelta(t, math.Expm1(m.Predict(vec)), got, 1e-12)
	assert.False(t, math.IsNaN(got))
}

func TestPredictRejectsWrongVectorLength(t *testing.T) {
	p, err := New(trainedArtifact(t))
	require.NoError(t, err)

	_, err = p.Predict([]float64{1, 2, 3})
	assert.Error(t, err)
}
