package perm

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// This is useful for initializing permutation arrays or creating index sequences.
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	if n <= 0 {
		return []int{}
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// This function is useful for calculating the size of the full permutation space.
// Note that factorials grow extremely fast: 13! = 6,227,020,800 exceeds 32-bit int.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// NextLex rearranges p into its lexicographic successor in place.
//
// NextLex reports false, leaving p sorted ascending (the identity when p is a
// permutation of [0, n)), if p was already the last permutation. Repeated
// calls starting from [Seq] therefore visit all n! permutations in increasing
// lexicographic order, and the identity comes first.
func NextLex(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		reverse(p)
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	reverse(p[i+1:])
	return true
}

func reverse(p []int) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// Rank returns the position of the permutation p of [0, n) in lexicographic
// order, computed from its Lehmer code. The identity has rank 0 and the
// reversal has rank n!-1.
//
// Rank does not validate p; use [IsPermutation] first for untrusted input.
func Rank(p []int) int {
	n := len(p)
	rank := 0
	for i := 0; i < n; i++ {
		smaller := 0
		for j := i + 1; j < n; j++ {
			if p[j] < p[i] {
				smaller++
			}
		}
		rank = rank*(n-i) + smaller
	}
	return rank
}

// IsPermutation reports whether p contains each of 0, 1, ..., len(p)-1
// exactly once.
func IsPermutation(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
