// Package perm provides fixed-degree permutations and the precomputed tables
// that the cover search relies on.
//
// # Overview
//
// The cover search assigns a permutation of the sheets {0, ..., n-1} to each
// group generator and walks through candidates in a fixed total order. This
// package supplies everything that search needs from S_n:
//
//   - [Perm]: a permutation stored as its lexicographic rank, so the
//     identity is 0, ordering is integer comparison and "next" is +1
//   - [Group]: per-degree tables (images, inverses, orders, products)
//   - Conjugacy-minimal representatives and their automorphism groups,
//     used to keep one assignment per conjugacy class
//
// # Degrees and Precomputation
//
// [Sym] builds the tables for a degree the first time it is asked for, and
// caches them for the life of the process. Degrees 1 through [MaxDegree] are
// supported. For degrees up to 6 a full product table is precomputed, so
// [Group.Compose] is a single lookup; degree 7 composes image arrays
// directly. The strategy is fixed when the tables are built and never
// re-checked on the hot path.
//
//	g, err := perm.Sym(4)
//	if err != nil {
//	    return err
//	}
//	p, _ := g.FromImages([]int{1, 2, 3, 0})
//	fmt.Println(g.Format(p))         // (0 1 2 3)
//	fmt.Println(g.Format(g.Pow(p, 2))) // (0 2)(1 3)
//
// # Composition Convention
//
// Compose(p, q) applies q first and then p. Evaluating a word left to right
// therefore means replacing the running product r with Compose(t, r) for
// each term t, which makes the word act on sheets from left to right.
//
// # Conjugacy-Minimal Permutations
//
// Within each conjugacy class (cycle type) exactly one permutation is
// smallest in lexicographic order. [Group.IsConjugacyMinimal] tests for it,
// and [Group.Aut] returns the permutations that fix it under conjugation.
// The tables are derived at build time from the cycle structure, which keeps
// them correct by construction rather than transcribed.
//
// # Helpers
//
// [Seq], [Factorial], [NextLex] and [Rank] work on plain []int permutations
// of any length.
package perm
