package model

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/dominguezus/imdbsentiment/pkg/data"
	"github.com/dominguezus/imdbsentiment/pkg/exec"
	"github.com/dominguezus/imdbsentiment/pkg/optim"
)

// LogisticRegression is a binary classifier trained with mini-batch SGD.
// L1 and L2 penalty weights may be combined (elastic net); L2 is handled by
// the optimizer's weight decay, L1 is added to the gradient directly.
type LogisticRegression struct {
	W []float64 // weights, one per feature column
	b float64   // bias

	Lr        float64
	Epochs    int
	BatchSize int
	L1        float64
	L2        float64
	Seed      int64
	Backend   exec.Backend
}

// LogisticOption is functional config for LogisticRegression.
type LogisticOption func(*LogisticRegression)

func WithLearningRate(lr float64) LogisticOption {
	return func(m *LogisticRegression) { m.Lr = lr }
}
func WithEpochs(n int) LogisticOption    { return func(m *LogisticRegression) { m.Epochs = n } }
func WithBatchSize(n int) LogisticOption { return func(m *LogisticRegression) { m.BatchSize = n } }
func WithL1(w float64) LogisticOption    { return func(m *LogisticRegression) { m.L1 = w } }
func WithL2(w float64) LogisticOption    { return func(m *LogisticRegression) { m.L2 = w } }
func WithSeed(seed int64) LogisticOption {
	return func(m *LogisticRegression) { m.Seed = seed }
}
func WithBackend(b exec.Backend) LogisticOption {
	return func(m *LogisticRegression) { m.Backend = b }
}

// NewLogisticRegression initializes the model for nFeatures columns with
// small random weights to break symmetry.
func NewLogisticRegression(nFeatures int, opts ...LogisticOption) *LogisticRegression {
	m := &LogisticRegression{
		Lr:        0.1,
		Epochs:    10,
		BatchSize: 64,
		Seed:      1,
		Backend:   exec.NewPool(0),
	}
	for _, o := range opts {
		o(m)
	}
	rng := rand.New(rand.NewSource(m.Seed))
	m.W = make([]float64, nFeatures)
	for i := range m.W {
		m.W[i] = rng.NormFloat64() * 0.01
	}
	return m
}

// PredictProba returns p(y=1) for each row of X. Rows are scored in
// parallel through the configured backend.
func (m *LogisticRegression) PredictProba(X [][]float64) []float64 {
	if len(X) == 0 {
		return nil
	}
	out := make([]float64, len(X))
	backend := m.Backend
	if backend == nil {
		backend = exec.Local{}
	}
	backend.ForEach(len(X), func(i int) {
		out[i] = Sigmoid(floats.Dot(m.W, X[i]) + m.b)
	})
	return out
}

// Predict returns class labels using a 0.5 probability threshold.
func (m *LogisticRegression) Predict(X [][]float64) []float64 {
	proba := m.PredictProba(X)
	out := make([]float64, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

// Fit trains the model with mini-batch gradient descent over shuffled
// batches. Training blocks until every epoch has run; any validation error
// aborts the whole run.
func (m *LogisticRegression) Fit(X [][]float64, y []float64) error {
	if err := validateXY(X, y, "logistic"); err != nil {
		return err
	}
	if len(m.W) != len(X[0]) {
		return errFeatureMismatch("logistic", len(m.W), len(X[0]))
	}

	opt := optim.NewSGDMomentum(m.Lr, 0, m.L2)
	rng := rand.New(rand.NewSource(m.Seed))

	for ep := 0; ep < m.Epochs; ep++ {
		for batch := range data.Batches(X, y, m.BatchSize, rng) {
			p := m.PredictProba(batch.X)
			_, dy := BCE(batch.Y, p)

			gW := make([]float64, len(m.W))
			gb := 0.0
			for i, row := range batch.X {
				d := dy[i]
				floats.AddScaled(gW, d, row)
				gb += d
			}
			if m.L1 > 0 {
				for j, w := range m.W {
					if w > 0 {
						gW[j] += m.L1
					} else if w < 0 {
						gW[j] -= m.L1
					}
				}
			}

			opt.Step(m.W, gW)
			m.b -= m.Lr * gb
		}
	}
	return nil
}

// Coefficients returns a copy of the learned weight vector.
func (m *LogisticRegression) Coefficients() []float64 {
	out := make([]float64, len(m.W))
	copy(out, m.W)
	return out
}

// Bias returns the learned intercept.
func (m *LogisticRegression) Bias() float64 { return m.b }

// Sparsity reports the fraction of weights whose magnitude is below eps,
// useful for checking the effect of the L1 penalty.
func (m *LogisticRegression) Sparsity(eps float64) float64 {
	if len(m.W) == 0 {
		return 0
	}
	z := 0
	for _, w := range m.W {
		if math.Abs(w) < eps {
			z++
		}
	}
	return float64(z) / float64(len(m.W))
}
