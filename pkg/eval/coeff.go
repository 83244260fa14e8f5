package eval

import (
	"fmt"
	"math"
	"sort"
)

// Coefficient is a linear-model weight tagged with the sentiment its sign
// implies for the positive class.
type Coefficient struct {
	Feature   string
	Weight    float64
	Sentiment string // "positive" or "negative"
}

// TopCoefficients selects the n weights with the largest absolute value.
// Ordering is deterministic: magnitude descending, feature name ascending
// on ties, so a fixed weight vector always yields the same set.
func TopCoefficients(names []string, weights []float64, n int) ([]Coefficient, error) {
	if len(names) != len(weights) {
		return nil, fmt.Errorf("eval: %d feature names but %d weights", len(names), len(weights))
	}
	if n <= 0 || n > len(weights) {
		n = len(weights)
	}

	coeffs := make([]Coefficient, len(weights))
	for i, w := range weights {
		sentiment := "positive"
		if w < 0 {
			sentiment = "negative"
		}
		coeffs[i] = Coefficient{Feature: names[i], Weight: w, Sentiment: sentiment}
	}
	sort.Slice(coeffs, func(a, b int) bool {
		wa, wb := math.Abs(coeffs[a].Weight), math.Abs(coeffs[b].Weight)
		if wa != wb {
			return wa > wb
		}
		return coeffs[a].Feature < coeffs[b].Feature
	})
	return coeffs[:n], nil
}

// SplitBySentiment partitions coefficients into the positive and negative
// groups, preserving their order.
func SplitBySentiment(coeffs []Coefficient) (positive, negative []Coefficient) {
	for _, c := range coeffs {
		if c.Sentiment == "positive" {
			positive = append(positive, c)
		} else {
			negative = append(negative, c)
		}
	}
	return
}
