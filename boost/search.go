package boost

import (
	"fmt"
	"math"
	"math/rand"
)

// TrainTestSplit shuffles the rows with the given seed and splits off the
// final testFrac share as the held-out partition.
func TrainTestSplit(X [][]float64, y []float64, testFrac float64, seed int64) (Xtrain [][]float64, Xtest [][]float64, ytrain, ytest []float64) {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(X))

	nTest := int(math.Round(float64(len(X)) * testFrac))
	cut := len(X) - nTest

	for i, p := range perm {
		if i < cut {
			Xtrain = append(Xtrain, X[p])
			ytrain = append(ytrain, y[p])
		} else {
			Xtest = append(Xtest, X[p])
			ytest = append(ytest, y[p])
		}
	}
	return Xtrain, Xtest, ytrain, ytest
}

// KFold partitions row indices into k shuffled folds. Every index appears in
// exactly one fold; fold sizes differ by at most one.
func KFold(n, k int, seed int64) [][]int {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	folds := make([][]int, k)
	for i, p := range perm {
		folds[i%k] = append(folds[i%k], p)
	}
	return folds
}

// GridResult is the cross-validated score of one hyperparameter combination.
type GridResult struct {
	Params  Params
	MeanMAE float64
}

// GridSearch exhaustively evaluates every parameter combination with k-fold
// cross-validation and returns the combination minimizing mean absolute error,
// along with the full result table. Scores are computed on the target scale
// the model is trained on (log scale for the rental-count pipeline).
func GridSearch(X [][]float64, y []float64, grid []Params, folds int, seed int64) (Params, []GridResult, error) {
	if len(grid) == 0 {
		return Params{}, nil, fmt.Errorf("empty parameter grid")
	}
	if folds < 2 || folds > len(X) {
		return Params{}, nil, fmt.Errorf("invalid fold count %d for %d rows", folds, len(X))
	}

	foldIdx := KFold(len(X), folds, seed)
	results := make([]GridResult, 0, len(grid))
	best := GridResult{MeanMAE: math.Inf(1)}

	for _, p := range grid {
		total := 0.0
		for fi := range foldIdx {
			holdout := foldIdx[fi]
			inFold := make(map[int]bool, len(holdout))
			for _, idx := range holdout {
				inFold[idx] = true
			}

			var Xtr [][]float64
			var ytr []float64
			for i := range X {
				if !inFold[i] {
					Xtr = append(Xtr, X[i])
					ytr = append(ytr, y[i])
				}
			}

			m, err := Train(Xtr, ytr, p)
			if err != nil {
				return Params{}, nil, fmt.Errorf("training fold %d with %+v: %w", fi, p, err)
			}

			var pred, truth []float64
			for _, idx := range holdout {
				pred = append(pred, m.Predict(X[idx]))
				truth = append(truth, y[idx])
			}

			mae, err := MAE(truth, pred)
			if err != nil {
				return Params{}, nil, err
			}
			total += mae
		}

		r := GridResult{Params: p, MeanMAE: total / float64(folds)}
		results = append(results, r)
		if r.MeanMAE < best.MeanMAE {
			best = r
		}
	}

	return best.Params, results, nil
}

// ExpandGrid builds the cartesian product of the supplied axis values.
func ExpandGrid(trees, depths []int, rates, lambdas, alphas []float64) []Params {
	var grid []Params
	for _, t := range trees {
		for _, d := range depths {
			for _, lr := range rates {
				for _, l := range lambdas {
					for _, a := range alphas {
						grid = append(grid, Params{
							Trees:        t,
							MaxDepth:     d,
							LearningRate: lr,
							RegLambda:    l,
							RegAlpha:     a,
						})
					}
				}
			}
		}
	}
	return grid
}
