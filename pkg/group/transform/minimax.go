package transform

import "github.com/matzehuels/covertower/pkg/group"

// Minimax returns a copy of p with its generators relabelled and its
// relations reordered and rotated, together with the relabelling used:
// generator g of p is generator mapping[g] of the result.
//
// Scanning the relations of the result from first to last, each relation
// introduces as few previously unseen generators as possible. A search that
// assigns generators in label order can then test a relation as soon as its
// last generator has been chosen, instead of waiting for a full assignment.
//
// # Algorithm
//
// Minimax works on the relation × generator incidence matrix:
//  1. Among the relations not yet placed, pick the one using the fewest
//     generators that have no label yet. Ties go to the shorter relation
//     (by [group.Word.WordLength]); on equal length the earlier one wins.
//  2. Swap it into the next position and give its unlabelled generators the
//     next free labels, in their current order.
//  3. Rotate it with [group.Word.CycleLeft] until its last term uses its own
//     highest label.
//
// Relations that use no generators at all end up at the front, unrotated.
//
// # Guarantees
//
// Every non-empty relation of the result ends with a term whose generator
// is the largest the relation uses. Relation scheduling in package covers
// depends on this property.
//
// # Degenerate Input
//
// With no relations or no generators Minimax returns an unchanged copy and
// the identity mapping. p itself is never modified.
func Minimax(p *group.Presentation) (*group.Presentation, []int) {
	out := p.Clone()
	nGen := out.NumGenerators
	relabel := make([]int, nGen)    // old label -> new label
	relabelInv := make([]int, nGen) // new label -> old label
	for i := range relabel {
		relabel[i] = i
		relabelInv[i] = i
	}
	if len(out.Relations) == 0 || nGen == 0 {
		return out, relabel
	}

	rels := out.Relations
	inc := out.Incidence()

	unseen := func(r, gensUsed int) int {
		count := 0
		for g := gensUsed; g < nGen; g++ {
			if inc[r][relabelInv[g]] {
				count++
			}
		}
		return count
	}

	gensUsed := 0
	for placed := range rels {
		useRow := placed
		best := unseen(placed, gensUsed)
		for r := placed + 1; r < len(rels); r++ {
			curr := unseen(r, gensUsed)
			if curr < best || (curr == best && rels[r].WordLength() < rels[useRow].WordLength()) {
				best, useRow = curr, r
			}
		}

		if useRow != placed {
			inc[useRow], inc[placed] = inc[placed], inc[useRow]
			rels[useRow], rels[placed] = rels[placed], rels[useRow]
		}

		if gensUsed == 0 && best == 0 {
			continue
		}

		for g := gensUsed; g < nGen; g++ {
			if !inc[placed][relabelInv[g]] {
				continue
			}
			if g != gensUsed {
				relabelInv[g], relabelInv[gensUsed] = relabelInv[gensUsed], relabelInv[g]
				relabel[relabelInv[g]], relabel[relabelInv[gensUsed]] = relabel[relabelInv[gensUsed]], relabel[relabelInv[g]]
			}
			gensUsed++
		}

		rotateToMax(rels[placed], relabel)
	}

	for i, r := range rels {
		rels[i] = r.Relabel(relabel)
	}
	if out.Names != nil {
		names := make([]string, nGen)
		for g, name := range out.Names {
			names[relabel[g]] = name
		}
		out.Names = names
	}
	return out, relabel
}

// rotateToMax cycles w until its last term carries the generator with the
// highest label under relabel.
func rotateToMax(w group.Word, relabel []int) {
	if len(w) == 0 {
		return
	}
	top := -1
	for _, t := range w {
		top = max(top, relabel[t.Gen])
	}
	for relabel[w[len(w)-1].Gen] != top {
		w.CycleLeft()
	}
}

// Relabel returns a copy of p with generator g renamed to mapping[g]. The
// mapping must be a permutation of the generators.
func Relabel(p *group.Presentation, mapping []int) *group.Presentation {
	out := p.Clone()
	for i, r := range out.Relations {
		out.Relations[i] = r.Relabel(mapping)
	}
	if out.Names != nil {
		for g, name := range p.Names {
			out.Names[mapping[g]] = name
		}
	}
	return out
}

// Invert returns the inverse of a relabelling permutation.
func Invert(mapping []int) []int {
	inv := make([]int, len(mapping))
	for old, neu := range mapping {
		inv[neu] = old
	}
	return inv
}
