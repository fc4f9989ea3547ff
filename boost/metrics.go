package boost

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// MAE is the mean absolute error between the true and predicted values.
func MAE(truth, pred []float64) (float64, error) {
	diffs, err := absDiffs(truth, pred)
	if err != nil {
		return 0, err
	}
	mean, err := stats.Mean(diffs)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate mean: %v", err)
	}
	return mean, nil
}

// RMSE is the root-mean-squared error between the true and predicted values.
func RMSE(truth, pred []float64) (float64, error) {
	diffs, err := absDiffs(truth, pred)
	if err != nil {
		return 0, err
	}
	for i, d := range diffs {
		diffs[i] = d * d
	}
	mean, err := stats.Mean(diffs)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate mean: %v", err)
	}
	return math.Sqrt(mean), nil
}

func absDiffs(truth, pred []float64) ([]float64, error) {
	if len(truth) != len(pred) {
		return nil, fmt.Errorf("length mismatch: %d truth vs %d predictions", len(truth), len(pred))
	}
	if len(truth) == 0 {
		return nil, fmt.Errorf("no values to score")
	}
	diffs := make([]float64, len(truth))
	for i := range truth {
		diffs[i] = math.Abs(truth[i] - pred[i])
	}
	return diffs, nil
}
