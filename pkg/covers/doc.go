// Package covers enumerates the transitive permutation representations of a
// finitely presented group and the finite-index subgroups they define.
//
// # Overview
//
// A homomorphism from a group G onto a transitive subgroup of S_n is the
// same thing as an n-sheeted connected cover of G's presentation complex,
// and up to conjugacy it corresponds to exactly one conjugacy class of
// index-n subgroups of G (the stabiliser of a sheet). [Enumerate] finds one
// representative of every such class and, for each, builds a presentation
// of the subgroup by the Reidemeister-Schreier method:
//
//	p := group.MustParse("<a, b | a^2, b^3, (a b)^2>")
//	n, err := covers.Enumerate(p, 3, func(c *covers.Cover) {
//	    fmt.Println(c.Subgroup)
//	})
//
// # Pipeline
//
// An enumeration runs in three stages:
//
//  1. The generators are relabelled with transform.Minimax so that the
//     relations can be checked as early as possible.
//  2. [NewSchedule] compiles the relations into formulas grouped by the
//     highest generator they use, sharing common subexpressions.
//  3. A depth-first search assigns a permutation to one generator at a
//     time, evaluates the formulas that became computable, and prunes any
//     assignment that breaks a relation or is not the smallest in its
//     conjugacy class.
//
// Complete assignments that act transitively are turned into a [Cover].
// Covers are reported in the labels of the caller's presentation.
//
// # Conjugacy
//
// Only the lexicographically smallest tuple of each simultaneous conjugacy
// class is accepted. The first non-identity representative must be
// conjugacy-minimal in S_n; after that the search keeps the group of
// permutations that fix every representative so far and rejects a new
// representative if conjugating it by any of them gives something smaller.
//
// # Subgroup Presentations
//
// A cover of degree n has n*k edges for k generators. The edges of a
// spanning tree rooted at sheet 0 are set to the identity, leaving
// n*k-(n-1) subgroup generators, and every relation is lifted once from
// each sheet. [Cover.Schreier] gives the element of G each subgroup
// generator stands for.
//
// The search runs on the calling goroutine and shares nothing between
// calls, so separate enumerations may run concurrently.
package covers
