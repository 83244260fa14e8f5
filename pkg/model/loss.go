package model

import "math"

// Sigmoid squashes a raw score into (0, 1).
func Sigmoid(x float64) float64 { return 1.0 / (1.0 + math.Exp(-x)) }

// ReLU is the hidden-layer activation of the feedforward network.
func ReLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// ReLUPrime is the derivative of ReLU.
func ReLUPrime(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// BCE returns the mean binary cross-entropy loss and its gradient with
// respect to the predictions. Predictions are clamped away from 0 and 1 to
// keep the logs finite.
func BCE(yTrue, yPred []float64) (float64, []float64) {
	n := len(yTrue)
	s := 0.0
	grad := make([]float64, n)
	for i := 0; i < n; i++ {
		p := math.Min(math.Max(yPred[i], 1e-12), 1-1e-12)
		y := yTrue[i]
		s += -(y*math.Log(p) + (1-y)*math.Log(1-p))
		grad[i] = (p - y) / float64(n)
	}
	return s / float64(n), grad
}
