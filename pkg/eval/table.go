// Package eval assembles per-model prediction scores next to the held-out
// labels and computes the comparison metrics (ROC curves, AUC, top
// coefficients) consumed by the viz package.
package eval

import (
	"fmt"

	"github.com/dominguezus/imdbsentiment/pkg/model"
)

// PredictionTable holds one label column and one score column per model.
// Score columns keep their insertion order; rows never move once the table
// is created, so every added column must line up with the labels.
type PredictionTable struct {
	labelName string
	labels    []float64
	order     []string
	scores    map[string][]float64
}

// NewPredictionTable creates a table from the held-out labels. The label
// slice is copied so later mutation of the source cannot skew evaluation.
func NewPredictionTable(labelName string, labels []float64) *PredictionTable {
	l := make([]float64, len(labels))
	copy(l, labels)
	return &PredictionTable{
		labelName: labelName,
		labels:    l,
		scores:    map[string][]float64{},
	}
}

// LabelName returns the name of the label column.
func (t *PredictionTable) LabelName() string { return t.labelName }

// Labels returns a copy of the label column.
func (t *PredictionTable) Labels() []float64 {
	out := make([]float64, len(t.labels))
	copy(out, t.labels)
	return out
}

// NumRows returns the row count shared by every column.
func (t *PredictionTable) NumRows() int { return len(t.labels) }

// Columns returns the score column names in insertion order.
func (t *PredictionTable) Columns() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Scores returns the score column with the given name.
func (t *PredictionTable) Scores(name string) ([]float64, bool) {
	s, ok := t.scores[name]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(s))
	copy(out, s)
	return out, true
}

// AddScores appends exactly one new score column under name. The column
// must match the label row count and the name must be unused.
func (t *PredictionTable) AddScores(name string, scores []float64) error {
	if name == "" {
		return fmt.Errorf("eval: empty score column name")
	}
	if name == t.labelName {
		return fmt.Errorf("eval: score column %q collides with the label column", name)
	}
	if _, exists := t.scores[name]; exists {
		return fmt.Errorf("eval: score column %q already exists", name)
	}
	if len(scores) != len(t.labels) {
		return fmt.Errorf("eval: column %q has %d rows, table has %d",
			name, len(scores), len(t.labels))
	}
	s := make([]float64, len(scores))
	copy(s, scores)
	t.scores[name] = s
	t.order = append(t.order, name)
	return nil
}

// Rename changes a score column's name in place. Renaming a column to the
// name it already has is a no-op, so repeating a rename changes nothing.
func (t *PredictionTable) Rename(old, new string) error {
	if old == new {
		if _, ok := t.scores[old]; !ok {
			return fmt.Errorf("eval: no score column %q", old)
		}
		return nil
	}
	s, ok := t.scores[old]
	if !ok {
		return fmt.Errorf("eval: no score column %q", old)
	}
	if _, exists := t.scores[new]; exists {
		return fmt.Errorf("eval: score column %q already exists", new)
	}
	if new == "" || new == t.labelName {
		return fmt.Errorf("eval: invalid score column name %q", new)
	}
	delete(t.scores, old)
	t.scores[new] = s
	for i, n := range t.order {
		if n == old {
			t.order[i] = new
		}
	}
	return nil
}

// Merge appends the other table's score columns onto t. Row count and
// order come from t; the other table must have the same number of rows and
// no overlapping column names.
func (t *PredictionTable) Merge(other *PredictionTable) error {
	if other.NumRows() != t.NumRows() {
		return fmt.Errorf("eval: merge row count mismatch: %d vs %d",
			t.NumRows(), other.NumRows())
	}
	for _, name := range other.order {
		if err := t.AddScores(name, other.scores[name]); err != nil {
			return err
		}
	}
	return nil
}

// Score applies a trained model to the held-out features and returns a
// table holding the labels plus a single score column under scoreName.
func Score(m model.Classifier, X [][]float64, labelName string, labels []float64, scoreName string) (*PredictionTable, error) {
	if len(X) != len(labels) {
		return nil, fmt.Errorf("eval: %d feature rows but %d labels", len(X), len(labels))
	}
	t := NewPredictionTable(labelName, labels)
	if err := t.AddScores(scoreName, m.PredictProba(X)); err != nil {
		return nil, err
	}
	return t, nil
}
