package equity

import "gonum.org/v1/gonum/stat/combin"

// unrankCombination writes the rank-th k-subset of {0..n-1} in lexicographic
// order into comb (len(comb) == k). Ranks start at 0.
func unrankCombination(rank, n int, comb []int) {
	k := len(comb)
	x := 0
	for i := 0; i < k; i++ {
		for {
			c := combin.Binomial(n-1-x, k-1-i)
			if rank < c {
				break
			}
			rank -= c
			x++
		}
		comb[i] = x
		x++
	}
}

// nextCombination advances comb to its lexicographic successor among the
// k-subsets of {0..n-1}. It returns false after the last subset.
func nextCombination(comb []int, n int) bool {
	k := len(comb)
	i := k - 1
	for i >= 0 && comb[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	comb[i]++
	for j := i + 1; j < k; j++ {
		comb[j] = comb[j-1] + 1
	}
	return true
}
