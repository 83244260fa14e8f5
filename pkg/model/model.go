// Package model implements the three classifiers being compared on the
// review data: penalized logistic regression, gradient-boosted trees and a
// small feedforward network. Every trainer consumes the same dense feature
// matrix produced by textfeat and returns probability scores for ROC
// comparison.
package model

import (
	"errors"
	"fmt"
)

// Model is a generic supervised learning interface.
type Model interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) []float64
}

// Classifier additionally exposes probabilities.
type Classifier interface {
	Model
	PredictProba(X [][]float64) []float64 // returns p(y=1)
}

func validateXY(X [][]float64, y []float64, prefix string) error {
	if len(X) == 0 {
		return errors.New(prefix + ": empty X")
	}
	if len(y) != len(X) {
		return errors.New(prefix + ": X and y length mismatch")
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return errors.New(prefix + ": inconsistent number of features in X rows")
		}
	}
	return nil
}

func errFeatureMismatch(prefix string, want, got int) error {
	return fmt.Errorf("%s: model has %d features but data has %d", prefix, want, got)
}
