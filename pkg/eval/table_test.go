package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddScoresAddsExactlyOneColumn(t *testing.T) {
	labels := []float64{1, 0, 1}
	table := NewPredictionTable("Label", labels)

	require.NoError(t, table.AddScores("logistic", []float64{0.9, 0.2, 0.8}))

	assert.Equal(t, []string{"logistic"}, table.Columns())
	assert.Equal(t, "Label", table.LabelName())
	assert.Equal(t, []float64{1, 0, 1}, table.Labels(), "label values unchanged")
	assert.Equal(t, 3, table.NumRows())
}

func TestAddScoresRejectsBadColumns(t *testing.T) {
	table := NewPredictionTable("Label", []float64{1, 0})

	assert.Error(t, table.AddScores("short", []float64{0.5}), "row count mismatch")
	assert.Error(t, table.AddScores("Label", []float64{0.5, 0.5}), "label collision")
	assert.Error(t, table.AddScores("", []float64{0.5, 0.5}))

	require.NoError(t, table.AddScores("m", []float64{0.5, 0.5}))
	assert.Error(t, table.AddScores("m", []float64{0.1, 0.2}), "duplicate column")
}

func TestRenameIsIdempotent(t *testing.T) {
	table := NewPredictionTable("Label", []float64{1, 0})
	require.NoError(t, table.AddScores("Probability", []float64{0.7, 0.3}))

	require.NoError(t, table.Rename("Probability", "logistic"))
	require.NoError(t, table.Rename("logistic", "logistic"), "renaming to the same name is a no-op")

	assert.Equal(t, []string{"logistic"}, table.Columns())
	scores, ok := table.Scores("logistic")
	require.True(t, ok)
	assert.Equal(t, []float64{0.7, 0.3}, scores)

	_, gone := table.Scores("Probability")
	assert.False(t, gone)
}

func TestRenameErrors(t *testing.T) {
	table := NewPredictionTable("Label", []float64{1})
	require.NoError(t, table.AddScores("a", []float64{0.5}))
	require.NoError(t, table.AddScores("b", []float64{0.6}))

	assert.Error(t, table.Rename("missing", "x"))
	assert.Error(t, table.Rename("a", "b"), "target name taken")
	assert.Error(t, table.Rename("a", "Label"))
	assert.Error(t, table.Rename("missing", "missing"))
}

func TestMergePreservesRowCountAndOrder(t *testing.T) {
	labels := []float64{1, 0, 1, 0}
	first := NewPredictionTable("Label", labels)
	require.NoError(t, first.AddScores("logistic", []float64{0.9, 0.1, 0.8, 0.2}))

	second := NewPredictionTable("Label", labels)
	require.NoError(t, second.AddScores("boosted", []float64{0.7, 0.3, 0.6, 0.4}))
	third := NewPredictionTable("Label", labels)
	require.NoError(t, third.AddScores("network", []float64{0.6, 0.4, 0.7, 0.3}))

	require.NoError(t, first.Merge(second))
	require.NoError(t, first.Merge(third))

	assert.Equal(t, 4, first.NumRows(), "row count comes from the first table")
	assert.Equal(t, []float64{1, 0, 1, 0}, first.Labels(), "row order unchanged")
	assert.Equal(t, []string{"logistic", "boosted", "network"}, first.Columns())

	boosted, ok := first.Scores("boosted")
	require.True(t, ok)
	assert.Equal(t, []float64{0.7, 0.3, 0.6, 0.4}, boosted)
}

func TestMergeRowMismatch(t *testing.T) {
	a := NewPredictionTable("Label", []float64{1, 0})
	b := NewPredictionTable("Label", []float64{1})
	assert.Error(t, a.Merge(b))
}

func TestLabelsAreCopied(t *testing.T) {
	src := []float64{1, 0}
	table := NewPredictionTable("Label", src)
	src[0] = 0
	assert.Equal(t, []float64{1, 0}, table.Labels())
}

// fixedClassifier returns preset scores, standing in for a trained model.
type fixedClassifier struct{ scores []float64 }

func (f fixedClassifier) Fit(X [][]float64, y []float64) error { return nil }
func (f fixedClassifier) Predict(X [][]float64) []float64      { return f.scores }
func (f fixedClassifier) PredictProba(X [][]float64) []float64 { return f.scores }

func TestScoreBuildsSingleColumnTable(t *testing.T) {
	X := [][]float64{{1}, {2}}
	labels := []float64{1, 0}

	table, err := Score(fixedClassifier{scores: []float64{0.8, 0.1}}, X, "Label", labels, "logistic")
	require.NoError(t, err)

	assert.Equal(t, []string{"logistic"}, table.Columns())
	assert.Equal(t, labels, table.Labels())
}

func TestScoreLengthMismatch(t *testing.T) {
	_, err := Score(fixedClassifier{}, [][]float64{{1}}, "Label", []float64{1, 0}, "m")
	assert.Error(t, err)
}
