package data

import "math/rand"

// Batch is one mini-batch of featurized rows.
type Batch struct {
	X [][]float64
	Y []float64
}

// Batches emits shuffled mini-batches of X and Y through a channel and
// closes it after the last batch. The final batch may be short. Rows are
// not copied; batches alias the input slices.
func Batches(X [][]float64, Y []float64, batchSize int, rng *rand.Rand) <-chan Batch {
	out := make(chan Batch)
	go func() {
		defer close(out)
		n := len(X)
		if n == 0 {
			return
		}
		if batchSize <= 0 || batchSize > n {
			batchSize = n
		}
		indices := rng.Perm(n)
		for start := 0; start < n; start += batchSize {
			end := start + batchSize
			if end > n {
				end = n
			}
			bX := make([][]float64, 0, end-start)
			bY := make([]float64, 0, end-start)
			for _, idx := range indices[start:end] {
				bX = append(bX, X[idx])
				bY = append(bY, Y[idx])
			}
			out <- Batch{X: bX, Y: bY}
		}
	}()
	return out
}
