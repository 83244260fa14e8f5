package eval

import (
	"fmt"
	"sort"
)

// Curve is one model's ROC curve: false/true positive rates swept across
// every score threshold, plus the area under the curve.
type Curve struct {
	Model string
	FPR   []float64
	TPR   []float64
	AUC   float64
}

// ComputeROC builds the ROC curve for binary labels and real-valued
// scores. Rows are ranked by score descending; tied scores collapse into a
// single point so the curve is a step function. The first point is always
// (0,0) and the last (1,1). AUC is the trapezoidal area.
func ComputeROC(labels, scores []float64) (Curve, error) {
	if len(labels) != len(scores) {
		return Curve{}, fmt.Errorf("eval: roc needs equal lengths, got %d and %d",
			len(labels), len(scores))
	}
	pos, neg := 0.0, 0.0
	for _, l := range labels {
		if l >= 0.5 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return Curve{}, fmt.Errorf("eval: roc needs both classes, got %v positives and %v negatives", pos, neg)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	curve := Curve{FPR: []float64{0}, TPR: []float64{0}}
	tp, fp := 0.0, 0.0
	for k := 0; k < len(order); {
		// Consume the whole run of tied scores before emitting a point.
		threshold := scores[order[k]]
		for k < len(order) && scores[order[k]] == threshold {
			if labels[order[k]] >= 0.5 {
				tp++
			} else {
				fp++
			}
			k++
		}
		curve.FPR = append(curve.FPR, fp/neg)
		curve.TPR = append(curve.TPR, tp/pos)
	}

	for i := 1; i < len(curve.FPR); i++ {
		curve.AUC += (curve.FPR[i] - curve.FPR[i-1]) *
			(curve.TPR[i] + curve.TPR[i-1]) / 2
	}
	return curve, nil
}

// ROCs computes one curve per score column, in column order.
func (t *PredictionTable) ROCs() ([]Curve, error) {
	curves := make([]Curve, 0, len(t.order))
	for _, name := range t.order {
		c, err := ComputeROC(t.labels, t.scores[name])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		c.Model = name
		curves = append(curves, c)
	}
	return curves, nil
}
