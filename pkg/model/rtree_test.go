package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegressionTreeFitsStepFunction(t *testing.T) {
	var X [][]float64
	var y []float64
	for i := 0; i < 40; i++ {
		v := float64(i)
		X = append(X, []float64{v})
		if v < 20 {
			y = append(y, -1)
		} else {
			y = append(y, 1)
		}
	}

	tree := NewRegressionTree(WithTreeMaxDepth(2))
	require.NoError(t, tree.Fit(X, y))

	pred := tree.Predict([][]float64{{5}, {35}})
	assert.InDelta(t, -1, pred[0], 1e-9)
	assert.InDelta(t, 1, pred[1], 1e-9)
}

func TestRegressionTreeConstantTarget(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}}
	y := []float64{0.5, 0.5, 0.5}

	tree := NewRegressionTree()
	require.NoError(t, tree.Fit(X, y))
	assert.InDelta(t, 0.5, tree.Predict([][]float64{{2}})[0], 1e-9)
}

func TestRegressionTreeRespectsMinSamplesLeaf(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{0, 0, 1, 1}

	tree := NewRegressionTree(WithTreeMinSamplesLeaf(4))
	require.NoError(t, tree.Fit(X, y))

	// A split would leave fewer than four samples per side, so the tree
	// must stay a single leaf at the mean.
	for _, p := range tree.Predict(X) {
		assert.InDelta(t, 0.5, p, 1e-9)
	}
}

func TestRegressionTreeValidation(t *testing.T) {
	tree := NewRegressionTree()
	assert.Error(t, tree.Fit(nil, nil))
	assert.Error(t, tree.Fit([][]float64{{1}, {2}}, []float64{1}))
	assert.Error(t, tree.Fit([][]float64{{1}, {2, 3}}, []float64{1, 2}))
}
