package boost

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// minSplitSamples is the smallest node the tree builder will try to split.
const minSplitSamples = 2

// Train fits a gradient-boosted ensemble on X (row-major feature vectors)
// against y using squared-error loss. With squared error the per-sample
// hessian is 1, so leaf sums of hessians reduce to sample counts.
func Train(X [][]float64, y []float64, p Params) (*Model, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, fmt.Errorf("training data: %d rows, %d targets", len(X), len(y))
	}
	if p.Trees <= 0 || p.MaxDepth <= 0 || p.LearningRate <= 0 {
		return nil, fmt.Errorf("invalid params: %+v", p)
	}

	m := &Model{
		BaseScore:    stat.Mean(y, nil),
		LearningRate: p.LearningRate,
		NumFeatures:  len(X[0]),
		Params:       p,
		TrainedAt:    time.Now().UTC(),
	}

	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = m.BaseScore
	}

	grad := make([]float64, len(y))
	all := make([]int, len(y))
	for i := range all {
		all[i] = i
	}

	b := &builder{X: X, grad: grad, p: p}
	for t := 0; t < p.Trees; t++ {
		for i := range grad {
			grad[i] = pred[i] - y[i]
		}

		tree := &Tree{}
		b.grow(tree, all, 0)
		m.Trees = append(m.Trees, tree)

		for i, x := range X {
			pred[i] += p.LearningRate * tree.predict(x)
		}
	}

	return m, nil
}

// builder grows one regression tree against the current gradient vector.
type builder struct {
	X    [][]float64
	grad []float64
	p    Params
}

// grow appends the subtree for the given samples to tree.Nodes and returns
// the new node's index.
func (b *builder) grow(tree *Tree, samples []int, depth int) int {
	idx := len(tree.Nodes)
	tree.Nodes = append(tree.Nodes, Node{})

	if depth >= b.p.MaxDepth || len(samples) < minSplitSamples {
		tree.Nodes[idx] = Node{Leaf: true, Value: b.leafValue(samples)}
		return idx
	}

	feature, threshold, gain := b.bestSplit(samples)
	if gain <= 0 {
		tree.Nodes[idx] = Node{Leaf: true, Value: b.leafValue(samples)}
		return idx
	}

	var left, right []int
	for _, s := range samples {
		if b.X[s][feature] < threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	l := b.grow(tree, left, depth+1)
	r := b.grow(tree, right, depth+1)
	tree.Nodes[idx] = Node{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return idx
}

// leafValue is the regularized optimal weight -soft(G, alpha) / (H + lambda).
func (b *builder) leafValue(samples []int) float64 {
	g := 0.0
	for _, s := range samples {
		g += b.grad[s]
	}
	h := float64(len(samples))
	return -softThreshold(g, b.p.RegAlpha) / (h + b.p.RegLambda)
}

// bestSplit scans every feature for the split maximizing the L2-regularized
// gain. Returns a non-positive gain when no split improves on staying a leaf.
func (b *builder) bestSplit(samples []int) (feature int, threshold, gain float64) {
	grads := make([]float64, len(samples))
	for i, s := range samples {
		grads[i] = b.grad[s]
	}
	gTotal := floats.Sum(grads)
	hTotal := float64(len(samples))
	parentScore := score(gTotal, hTotal, b.p.RegLambda)

	gain = -1
	numFeatures := len(b.X[samples[0]])

	vals := make([]float64, len(samples))
	order := make([]int, len(samples))

	for f := 0; f < numFeatures; f++ {
		for i, s := range samples {
			vals[i] = b.X[s][f]
			order[i] = i
		}
		sort.Slice(order, func(a, c int) bool { return vals[order[a]] < vals[order[c]] })

		gLeft, hLeft := 0.0, 0.0
		for i := 0; i < len(order)-1; i++ {
			gLeft += grads[order[i]]
			hLeft++

			lo, hi := vals[order[i]], vals[order[i+1]]
			if lo == hi {
				continue
			}

			g := score(gLeft, hLeft, b.p.RegLambda) +
				score(gTotal-gLeft, hTotal-hLeft, b.p.RegLambda) -
				parentScore
			if g > gain {
				gain = g
				feature = f
				threshold = (lo + hi) / 2
			}
		}
	}

	return feature, threshold, gain
}

// score is the structure score G^2 / (H + lambda) of a candidate child.
func score(g, h, lambda float64) float64 {
	return g * g / (h + lambda)
}

func softThreshold(g, alpha float64) float64 {
	switch {
	case g > alpha:
		return g - alpha
	case g < -alpha:
		return g + alpha
	default:
		return 0
	}
}

// PredictBatch evaluates the model over every row of X.
func (m *Model) PredictBatch(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, x := range X {
		out[i] = m.Predict(x)
	}
	return out
}

// Expm1Batch applies math.Expm1 in place and returns the slice, inverting a
// log1p-transformed target back to its original scale.
func Expm1Batch(xs []float64) []float64 {
	for i, v := range xs {
		xs[i] = math.Expm1(v)
	}
	return xs
}

// Log1p applies math.Log1p to a copy of the target vector.
func Log1p(y []float64) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = math.Log1p(v)
	}
	return out
}
