package perm

import (
	"fmt"
	"slices"
)

// AutSentinel terminates each row of the table returned by [Group.MinimalTable].
const AutSentinel = -1

// CycleType returns the cycle lengths of p in non-increasing order,
// including fixed points. Two permutations are conjugate in S_n exactly when
// their cycle types agree.
func (g *Group) CycleType(p Perm) []int {
	cycles := g.Cycles(p)
	lengths := make([]int, len(cycles))
	for i, c := range cycles {
		lengths[i] = len(c)
	}
	slices.Sort(lengths)
	slices.Reverse(lengths)
	return lengths
}

func cycleTypeKey(lengths []int) string {
	return fmt.Sprint(lengths)
}

// buildClasses fills the conjugacy-minimal table and the automorphism group
// of every minimal non-identity permutation.
//
// Ranks are visited in increasing order, so the first permutation seen with
// a given cycle type is the smallest member of its conjugacy class. The
// automorphism group of a minimal p is its centraliser: every q with
// q∘p∘q⁻¹ = p, listed in increasing rank order.
func (g *Group) buildClasses() {
	g.minimal = make([]bool, g.size)
	g.autIndex = make([]int16, g.size)
	g.minByType = make(map[string]Perm)

	for r := 0; r < g.size; r++ {
		g.autIndex[r] = -1
		key := cycleTypeKey(g.CycleType(Perm(r)))
		if _, ok := g.minByType[key]; ok {
			continue
		}
		g.minByType[key] = Perm(r)
		g.minimal[r] = true
	}

	for r := 1; r < g.size; r++ {
		if !g.minimal[r] {
			continue
		}
		p := Perm(r)
		var aut []Perm
		for q := 0; q < g.size; q++ {
			if g.Conjugate(Perm(q), p) == p {
				aut = append(aut, Perm(q))
			}
		}
		g.autIndex[r] = int16(len(g.auts))
		g.auts = append(g.auts, aut)
		g.maxAut = max(g.maxAut, len(aut))
	}
}

// IsConjugacyMinimal reports whether p is the smallest permutation in its
// conjugacy class under the lexicographic order.
func (g *Group) IsConjugacyMinimal(p Perm) bool {
	return g.minimal[p]
}

// MinimalRepresentative returns the smallest permutation conjugate to p.
func (g *Group) MinimalRepresentative(p Perm) Perm {
	return g.minByType[cycleTypeKey(g.CycleType(p))]
}

// Aut returns the automorphism group of a conjugacy-minimal, non-identity
// permutation p: the permutations q with q∘p∘q⁻¹ = p, in increasing order.
//
// Aut returns nil for the identity (whose automorphism group is all of S_n)
// and for permutations that are not conjugacy-minimal. The returned slice
// is shared and must not be modified.
func (g *Group) Aut(p Perm) []Perm {
	idx := g.autIndex[p]
	if idx < 0 {
		return nil
	}
	return g.auts[idx]
}

// MaxAut returns the size of the largest automorphism group of a minimal
// non-identity permutation. It bounds the memory a search needs for each
// per-depth automorphism snapshot.
func (g *Group) MaxAut() int {
	return g.maxAut
}

// Minimal returns the conjugacy-minimal permutations in increasing order,
// one per conjugacy class, starting with the identity.
func (g *Group) Minimal() []Perm {
	out := make([]Perm, 0, len(g.minByType))
	for r, ok := range g.minimal {
		if ok {
			out = append(out, Perm(r))
		}
	}
	return out
}

// MinimalTable returns the minimal-representative table in the layout used
// by offline-generated tables: for each minimal permutation (by rank) a row
// of automorphism ranks terminated by [AutSentinel]. The identity's row is
// just the sentinel, meaning "all of S_n".
func (g *Group) MinimalTable() map[int][]int {
	table := make(map[int][]int, len(g.minByType))
	for _, p := range g.Minimal() {
		aut := g.Aut(p)
		row := make([]int, 0, len(aut)+1)
		for _, q := range aut {
			row = append(row, q.Rank())
		}
		table[p.Rank()] = append(row, AutSentinel)
	}
	return table
}
