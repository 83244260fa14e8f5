package model

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/dominguezus/imdbsentiment/pkg/data"
)

// NeuralNet is a small feedforward binary classifier: one ReLU hidden
// layer and a sigmoid output, trained with mini-batch SGD. Layer math runs
// on gonum dense matrices.
type NeuralNet struct {
	Hidden    int
	Lr        float64
	Epochs    int
	BatchSize int
	Seed      int64

	w1 *mat.Dense // nFeatures x Hidden
	b1 []float64  // Hidden
	w2 []float64  // Hidden
	b2 float64

	nFeatures int
}

// NetOption is functional config for NeuralNet.
type NetOption func(*NeuralNet)

func WithHiddenUnits(n int) NetOption    { return func(m *NeuralNet) { m.Hidden = n } }
func WithNetLearningRate(lr float64) NetOption {
	return func(m *NeuralNet) { m.Lr = lr }
}
func WithNetEpochs(n int) NetOption    { return func(m *NeuralNet) { m.Epochs = n } }
func WithNetBatchSize(n int) NetOption { return func(m *NeuralNet) { m.BatchSize = n } }
func WithNetSeed(seed int64) NetOption { return func(m *NeuralNet) { m.Seed = seed } }

// NewNeuralNet initializes the network for nFeatures input columns.
// Hidden weights use He initialization, the output layer starts small.
func NewNeuralNet(nFeatures int, opts ...NetOption) *NeuralNet {
	m := &NeuralNet{
		Hidden:    16,
		Lr:        0.05,
		Epochs:    10,
		BatchSize: 64,
		Seed:      1,
		nFeatures: nFeatures,
	}
	for _, o := range opts {
		o(m)
	}

	rng := rand.New(rand.NewSource(m.Seed))
	scale := math.Sqrt(2.0 / float64(nFeatures))
	w1 := make([]float64, nFeatures*m.Hidden)
	for i := range w1 {
		w1[i] = rng.NormFloat64() * scale
	}
	m.w1 = mat.NewDense(nFeatures, m.Hidden, w1)
	m.b1 = make([]float64, m.Hidden)
	m.w2 = make([]float64, m.Hidden)
	for i := range m.w2 {
		m.w2[i] = rng.NormFloat64() * 0.01
	}
	return m
}

// forward computes hidden pre-activations, hidden activations and output
// probabilities for a batch matrix.
func (m *NeuralNet) forward(B *mat.Dense) (z1, h *mat.Dense, proba []float64) {
	n, _ := B.Dims()
	z1 = mat.NewDense(n, m.Hidden, nil)
	z1.Mul(B, m.w1)
	for i := 0; i < n; i++ {
		for j := 0; j < m.Hidden; j++ {
			z1.Set(i, j, z1.At(i, j)+m.b1[j])
		}
	}
	h = mat.NewDense(n, m.Hidden, nil)
	h.Apply(func(_, _ int, v float64) float64 { return ReLU(v) }, z1)

	proba = make([]float64, n)
	for i := 0; i < n; i++ {
		s := m.b2
		for j := 0; j < m.Hidden; j++ {
			s += h.At(i, j) * m.w2[j]
		}
		proba[i] = Sigmoid(s)
	}
	return z1, h, proba
}

// Fit trains the network with mini-batch gradient descent.
func (m *NeuralNet) Fit(X [][]float64, y []float64) error {
	if err := validateXY(X, y, "neuralnet"); err != nil {
		return err
	}
	if m.nFeatures != len(X[0]) {
		return errFeatureMismatch("neuralnet", m.nFeatures, len(X[0]))
	}

	rng := rand.New(rand.NewSource(m.Seed))
	for ep := 0; ep < m.Epochs; ep++ {
		for batch := range data.Batches(X, y, m.BatchSize, rng) {
			m.step(batch)
		}
	}
	return nil
}

func (m *NeuralNet) step(batch data.Batch) {
	n := len(batch.X)
	B := denseFromRows(batch.X)
	z1, h, proba := m.forward(B)

	// Combined sigmoid+BCE gradient with respect to the output logit.
	dz2 := make([]float64, n)
	for i := range dz2 {
		dz2[i] = (proba[i] - batch.Y[i]) / float64(n)
	}

	// Output layer gradients.
	gW2 := make([]float64, m.Hidden)
	gb2 := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < m.Hidden; j++ {
			gW2[j] += h.At(i, j) * dz2[i]
		}
		gb2 += dz2[i]
	}

	// Backprop into the hidden layer.
	dz1 := mat.NewDense(n, m.Hidden, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m.Hidden; j++ {
			dz1.Set(i, j, dz2[i]*m.w2[j]*ReLUPrime(z1.At(i, j)))
		}
	}
	gW1 := mat.NewDense(m.nFeatures, m.Hidden, nil)
	gW1.Mul(B.T(), dz1)

	// Updates.
	gW1.Scale(m.Lr, gW1)
	m.w1.Sub(m.w1, gW1)
	for j := 0; j < m.Hidden; j++ {
		colSum := 0.0
		for i := 0; i < n; i++ {
			colSum += dz1.At(i, j)
		}
		m.b1[j] -= m.Lr * colSum
		m.w2[j] -= m.Lr * gW2[j]
	}
	m.b2 -= m.Lr * gb2
}

// PredictProba returns p(y=1) for each row of X.
func (m *NeuralNet) PredictProba(X [][]float64) []float64 {
	if len(X) == 0 {
		return nil
	}
	_, _, proba := m.forward(denseFromRows(X))
	return proba
}

// Predict returns class labels using a 0.5 probability threshold.
func (m *NeuralNet) Predict(X [][]float64) []float64 {
	proba := m.PredictProba(X)
	out := make([]float64, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

func denseFromRows(rows [][]float64) *mat.Dense {
	n, p := len(rows), len(rows[0])
	flat := make([]float64, 0, n*p)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return mat.NewDense(n, p, flat)
}
