package model

import (
	"math/rand"
	"sort"
)

// ---------------------------
// Regression tree (base learner for gradient boosting)
// ---------------------------

// RegressionTree is a CART-style regression tree splitting on variance
// reduction. It exists to fit the pseudo-residuals inside GradientBoosting
// but works as a standalone regressor.
type RegressionTree struct {
	MaxDepth       int // root depth = 0; 0 => no limit
	MinSamplesLeaf int
	MaxFeatures    int // 0 => consider all features at each split
	Seed           int64

	root *rtNode
}

type rtNode struct {
	isLeaf    bool
	feature   int
	threshold float64 // x <= threshold goes left
	left      *rtNode
	right     *rtNode
	value     float64 // leaf mean
}

// TreeOption is functional config for RegressionTree.
type TreeOption func(*RegressionTree)

func WithTreeMaxDepth(d int) TreeOption {
	return func(t *RegressionTree) { t.MaxDepth = d }
}
func WithTreeMinSamplesLeaf(n int) TreeOption {
	return func(t *RegressionTree) { t.MinSamplesLeaf = n }
}
func WithTreeMaxFeatures(k int) TreeOption {
	return func(t *RegressionTree) { t.MaxFeatures = k }
}
func WithTreeSeed(seed int64) TreeOption {
	return func(t *RegressionTree) { t.Seed = seed }
}

// NewRegressionTree returns a tree with sensible defaults for boosting:
// shallow and with a small leaf minimum.
func NewRegressionTree(opts ...TreeOption) *RegressionTree {
	t := &RegressionTree{
		MaxDepth:       3,
		MinSamplesLeaf: 1,
		Seed:           1,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Fit grows the tree on X and continuous targets y.
func (t *RegressionTree) Fit(X [][]float64, y []float64) error {
	if err := validateXY(X, y, "rtree"); err != nil {
		return err
	}
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(t.Seed))
	t.root = t.buildNode(X, y, idx, 0, len(X[0]), rng)
	return nil
}

// Predict returns the leaf mean for each row of X.
func (t *RegressionTree) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = t.predictSingle(row)
	}
	return out
}

func (t *RegressionTree) predictSingle(x []float64) float64 {
	node := t.root
	for node != nil && !node.isLeaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	if node == nil {
		return 0
	}
	return node.value
}

func (t *RegressionTree) buildNode(X [][]float64, y []float64, idx []int, depth, p int, rng *rand.Rand) *rtNode {
	mean := meanAt(y, idx)
	if len(idx) <= t.MinSamplesLeaf || (t.MaxDepth > 0 && depth >= t.MaxDepth) {
		return &rtNode{isLeaf: true, value: mean}
	}

	// Optionally subsample the candidate features, as the bagged forest did.
	features := make([]int, p)
	for j := range features {
		features[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rng.Shuffle(p, func(a, b int) { features[a], features[b] = features[b], features[a] })
		features = features[:t.MaxFeatures]
	}

	best := splitCandidate{feature: -1}
	for _, f := range features {
		if cand := bestSplitForFeature(X, y, idx, f, t.MinSamplesLeaf); cand.feature >= 0 {
			if best.feature < 0 || cand.score < best.score {
				best = cand
			}
		}
	}
	if best.feature < 0 {
		return &rtNode{isLeaf: true, value: mean}
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if X[i][best.feature] <= best.threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return &rtNode{isLeaf: true, value: mean}
	}

	return &rtNode{
		feature:   best.feature,
		threshold: best.threshold,
		left:      t.buildNode(X, y, leftIdx, depth+1, p, rng),
		right:     t.buildNode(X, y, rightIdx, depth+1, p, rng),
	}
}

type splitCandidate struct {
	feature   int
	threshold float64
	score     float64 // weighted sum of squared errors after the split
}

// bestSplitForFeature scans the sorted feature values once, maintaining
// running sums so each candidate threshold is evaluated in O(1).
func bestSplitForFeature(X [][]float64, y []float64, idx []int, f, minLeaf int) splitCandidate {
	n := len(idx)
	order := make([]int, n)
	copy(order, idx)
	sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

	var totalSum, totalSq float64
	for _, i := range order {
		totalSum += y[i]
		totalSq += y[i] * y[i]
	}

	best := splitCandidate{feature: -1}
	var leftSum, leftSq float64
	for k := 0; k < n-1; k++ {
		i := order[k]
		leftSum += y[i]
		leftSq += y[i] * y[i]

		// Can't split between equal feature values.
		if X[order[k]][f] == X[order[k+1]][f] {
			continue
		}
		nl, nr := k+1, n-k-1
		if nl < minLeaf || nr < minLeaf {
			continue
		}

		rightSum := totalSum - leftSum
		rightSq := totalSq - leftSq
		// SSE = sum(y^2) - n*mean^2 for each side.
		sse := (leftSq - leftSum*leftSum/float64(nl)) +
			(rightSq - rightSum*rightSum/float64(nr))
		if best.feature < 0 || sse < best.score {
			best = splitCandidate{
				feature:   f,
				threshold: (X[order[k]][f] + X[order[k+1]][f]) / 2,
				score:     sse,
			}
		}
	}
	return best
}

func meanAt(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	s := 0.0
	for _, i := range idx {
		s += y[i]
	}
	return s / float64(len(idx))
}
