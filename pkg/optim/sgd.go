// Package optim holds the gradient-descent update rules shared by the
// trainers.
package optim

// SGD is stochastic gradient descent with optional momentum and L2 weight
// decay. WeightDecay is applied as part of the update, it must not be baked
// into the gradients by the caller as well.
type SGD struct {
	LearningRate float64
	Momentum     float64
	WeightDecay  float64

	velocity []float64
}

// NewSGD returns plain SGD with the given learning rate.
func NewSGD(lr float64) *SGD { return &SGD{LearningRate: lr} }

// NewSGDMomentum returns SGD with momentum and L2 weight decay.
func NewSGDMomentum(lr, momentum, weightDecay float64) *SGD {
	return &SGD{LearningRate: lr, Momentum: momentum, WeightDecay: weightDecay}
}

// Step updates weights in place from the gradients.
func (o *SGD) Step(weights, grads []float64) {
	if o.Momentum == 0 {
		for i := range weights {
			g := grads[i] + o.WeightDecay*weights[i]
			weights[i] -= o.LearningRate * g
		}
		return
	}
	if len(o.velocity) != len(weights) {
		o.velocity = make([]float64, len(weights))
	}
	for i := range weights {
		g := grads[i] + o.WeightDecay*weights[i]
		o.velocity[i] = o.Momentum*o.velocity[i] - o.LearningRate*g
		weights[i] += o.velocity[i]
	}
}
