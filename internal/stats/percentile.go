package stats

import "sort"

// DescendingRanks returns the 1-based competition rank of every value when
// sorted from largest to smallest. Equal values share the best rank, so
// {9, 5, 5, 1} ranks as {1, 2, 2, 4}.
func DescendingRanks(values []float64) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] > values[idx[b]]
	})

	ranks := make([]int, len(values))
	for pos, i := range idx {
		if pos > 0 && values[i] == values[idx[pos-1]] {
			ranks[i] = ranks[idx[pos-1]]
			continue
		}
		ranks[i] = pos + 1
	}
	return ranks
}

// TopPercentiles converts descending ranks into the share of keys at or
// above each value, in percent. The busiest key of 10 scores 10.
func TopPercentiles(values []float64) []float64 {
	ranks := DescendingRanks(values)
	out := make([]float64, len(values))
	n := float64(len(values))
	for i, r := range ranks {
		out[i] = float64(r) / n * 100
	}
	return out
}
