package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeuralNetLearnsSeparableData(t *testing.T) {
	X, y := separableData(400, 13)
	m := NewNeuralNet(2, WithHiddenUnits(8), WithNetLearningRate(0.1),
		WithNetEpochs(60), WithNetBatchSize(32), WithNetSeed(1))
	require.NoError(t, m.Fit(X, y))

	pred := m.Predict(X)
	acc := Accuracy(LabelsFromFloats(y), LabelsFromFloats(pred))
	assert.Greater(t, acc, 0.9)
}

func TestNeuralNetLearnsQuadrants(t *testing.T) {
	X, y := quadrantData(800, 21)
	m := NewNeuralNet(2, WithHiddenUnits(16), WithNetLearningRate(0.5),
		WithNetEpochs(200), WithNetBatchSize(64), WithNetSeed(3))
	require.NoError(t, m.Fit(X, y))

	pred := m.Predict(X)
	acc := Accuracy(LabelsFromFloats(y), LabelsFromFloats(pred))
	assert.Greater(t, acc, 0.85, "hidden layer should capture the nonlinearity")
}

func TestNeuralNetProbaBounds(t *testing.T) {
	X, y := separableData(50, 1)
	m := NewNeuralNet(2, WithNetEpochs(2))
	require.NoError(t, m.Fit(X, y))
	for _, p := range m.PredictProba(X) {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestNeuralNetDeterministicForSeed(t *testing.T) {
	X, y := separableData(100, 5)

	a := NewNeuralNet(2, WithNetEpochs(5), WithNetSeed(9))
	require.NoError(t, a.Fit(X, y))
	b := NewNeuralNet(2, WithNetEpochs(5), WithNetSeed(9))
	require.NoError(t, b.Fit(X, y))

	assert.Equal(t, a.PredictProba(X), b.PredictProba(X))
}

func TestNeuralNetFeatureMismatch(t *testing.T) {
	m := NewNeuralNet(3)
	assert.Error(t, m.Fit([][]float64{{1, 2}}, []float64{1}))
}
