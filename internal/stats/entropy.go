package stats

import "math"

// Entropy is the Shannon entropy in bits of the distribution given by
// non-negative weights
func Entropy(weights []float64) float64 {
	total := Sum(weights)
	if total <= 0 {
		return 0
	}
	var h float64
	for _, w := range weights {
		if w > 0 {
			p := w / total
			h -= p * math.Log2(p)
		}
	}
	return h
}

// Evenness scales Entropy to [0, 1] by its maximum log2(n). 1 means the
// weight is spread evenly; values near 0 mean a few entries carry it all.
func Evenness(weights []float64) float64 {
	if len(weights) < 2 {
		return 0
	}
	return Entropy(weights) / math.Log2(float64(len(weights)))
}
