package model

import (
	"math"
	"math/rand"

	"github.com/dominguezus/imdbsentiment/pkg/exec"
)

// GradientBoosting is a binary classifier boosting shallow regression
// trees on the gradient of the logistic loss. Stages are sequential; only
// row scoring fans out through the backend.
type GradientBoosting struct {
	NEstimators    int
	Shrinkage      float64 // learning rate applied to each tree
	MaxDepth       int
	MinSamplesLeaf int
	Subsample      float64 // fraction of rows per stage, 1 = all
	Seed           int64
	Backend        exec.Backend

	prior float64 // initial log-odds
	trees []*RegressionTree
}

// GBOption is functional config for GradientBoosting.
type GBOption func(*GradientBoosting)

func WithStages(n int) GBOption { return func(m *GradientBoosting) { m.NEstimators = n } }
func WithShrinkage(lr float64) GBOption {
	return func(m *GradientBoosting) { m.Shrinkage = lr }
}
func WithGBMaxDepth(d int) GBOption { return func(m *GradientBoosting) { m.MaxDepth = d } }
func WithGBMinSamplesLeaf(n int) GBOption {
	return func(m *GradientBoosting) { m.MinSamplesLeaf = n }
}
func WithSubsample(f float64) GBOption {
	return func(m *GradientBoosting) { m.Subsample = f }
}
func WithGBSeed(seed int64) GBOption { return func(m *GradientBoosting) { m.Seed = seed } }
func WithGBBackend(b exec.Backend) GBOption {
	return func(m *GradientBoosting) { m.Backend = b }
}

// NewGradientBoosting returns a booster with sensible defaults.
func NewGradientBoosting(opts ...GBOption) *GradientBoosting {
	m := &GradientBoosting{
		NEstimators:    100,
		Shrinkage:      0.1,
		MaxDepth:       3,
		MinSamplesLeaf: 5,
		Subsample:      1.0,
		Seed:           1,
		Backend:        exec.NewPool(0),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Fit runs the boosting stages. Each stage fits a regression tree to the
// negative gradient y - sigmoid(F) of the current raw scores F.
func (m *GradientBoosting) Fit(X [][]float64, y []float64) error {
	if err := validateXY(X, y, "gbm"); err != nil {
		return err
	}
	n := len(X)
	rng := rand.New(rand.NewSource(m.Seed))

	// Prior is the log-odds of the positive rate, clamped for pure labels.
	pos := 0.0
	for _, v := range y {
		pos += v
	}
	rate := math.Min(math.Max(pos/float64(n), 1e-6), 1-1e-6)
	m.prior = math.Log(rate / (1 - rate))

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = m.prior
	}

	m.trees = make([]*RegressionTree, 0, m.NEstimators)
	residual := make([]float64, n)
	for stage := 0; stage < m.NEstimators; stage++ {
		for i := 0; i < n; i++ {
			residual[i] = y[i] - Sigmoid(scores[i])
		}

		trainX, trainR := X, residual
		if m.Subsample > 0 && m.Subsample < 1 {
			k := int(float64(n) * m.Subsample)
			if k < 1 {
				k = 1
			}
			perm := rng.Perm(n)[:k]
			trainX = make([][]float64, k)
			trainR = make([]float64, k)
			for j, idx := range perm {
				trainX[j] = X[idx]
				trainR[j] = residual[idx]
			}
		}

		tree := NewRegressionTree(
			WithTreeMaxDepth(m.MaxDepth),
			WithTreeMinSamplesLeaf(m.MinSamplesLeaf),
			WithTreeSeed(m.Seed+int64(stage)),
		)
		if err := tree.Fit(trainX, trainR); err != nil {
			return err
		}
		m.trees = append(m.trees, tree)

		update := tree.Predict(X)
		for i := 0; i < n; i++ {
			scores[i] += m.Shrinkage * update[i]
		}
	}
	return nil
}

// rawScores sums the shrunken tree outputs on top of the prior.
func (m *GradientBoosting) rawScores(X [][]float64) []float64 {
	out := make([]float64, len(X))
	backend := m.Backend
	if backend == nil {
		backend = exec.Local{}
	}
	backend.ForEach(len(X), func(i int) {
		s := m.prior
		for _, tree := range m.trees {
			s += m.Shrinkage * tree.predictSingle(X[i])
		}
		out[i] = s
	})
	return out
}

// PredictProba returns p(y=1) for each row of X.
func (m *GradientBoosting) PredictProba(X [][]float64) []float64 {
	if len(X) == 0 {
		return nil
	}
	raw := m.rawScores(X)
	for i := range raw {
		raw[i] = Sigmoid(raw[i])
	}
	return raw
}

// Predict returns class labels using a 0.5 probability threshold.
func (m *GradientBoosting) Predict(X [][]float64) []float64 {
	proba := m.PredictProba(X)
	out := make([]float64, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

// NumTrees returns the number of fitted stages.
func (m *GradientBoosting) NumTrees() int { return len(m.trees) }
