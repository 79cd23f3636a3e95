package covers

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/matzehuels/covertower/pkg/errors"
	"github.com/matzehuels/covertower/pkg/group"
)

// Schedule is the evaluation plan the search uses to check relations
// incrementally.
//
// Formulas are ordered by depth: the formulas in the index range
// [Counts[d], Counts[d+1]) only involve generators 0..d and can be computed
// as soon as generator d has a representative. Within a depth, relations
// come first so that a failing relation is found before any helper
// subexpression is computed. Every formula only refers to formulas with a
// smaller index, so evaluating in index order is always valid.
//
// A Schedule is immutable once built and may be shared between searches.
type Schedule struct {
	NumGenerators int
	Formulas      []Formula
	Counts        []int // length NumGenerators+1

	names []string
}

// NewSchedule compiles the relations of p into a [Schedule].
//
// p must already be in the form produced by transform.Minimax: every
// non-empty relation ends with a term using the relation's highest
// generator. NewSchedule returns an INVALID_PRESENTATION error otherwise.
// Empty relations hold trivially and are skipped.
//
// # Algorithm
//
// Each relation is scanned left to right while keeping, for every depth d,
// the run of terms that uses only generators <= d and excludes trailing
// terms of a smaller depth. When a term of a higher generator arrives, the
// open runs below it are closed: a run consisting of one unit-exponent term
// is reused as-is, and any other run becomes a formula at its depth, shared
// with any structurally equal formula found before. The closed run is then
// referenced by a single term in the run one depth up. The whole relation
// finally becomes a relation formula at the depth of its last term.
//
// After all relations are scanned, formulas are numbered in depth order
// and, as a refinement, each formula (longest index first) has verbatim
// occurrences of every earlier formula replaced by a reference to it.
func NewSchedule(p *group.Presentation) (*Schedule, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	nGen := p.NumGenerators
	for r, rel := range p.Relations {
		if len(rel) > 0 && rel[len(rel)-1].Gen != rel.MaxGen() {
			return nil, errors.New(errors.ErrCodeInvalidPresentation,
				"relation %d does not end with its highest generator; reorder the presentation first", r)
		}
	}

	type entry struct {
		f    Formula
		temp int
	}
	found := make([][]entry, nGen)
	index := make([]map[string]int, nGen)
	for d := range index {
		index[d] = make(map[string]int)
	}
	nSeen := nGen

	// seal records f at depth d, reusing an equal formula if there is one,
	// and returns its temporary index.
	seal := func(d int, f Formula) int {
		key := f.key()
		if i, ok := index[d][key]; ok {
			return found[d][i].temp
		}
		index[d][key] = len(found[d])
		found[d] = append(found[d], entry{f: f, temp: nSeen})
		nSeen++
		return nSeen - 1
	}

	runs := make([]group.Word, nGen)
	for _, rel := range p.Relations {
		if len(rel) == 0 {
			continue
		}
		depth := nGen
		for _, t := range rel {
			if t.Gen < depth {
				depth = t.Gen
				runs[depth] = append(runs[depth], group.Term{Gen: depth, Exp: t.Exp})
				continue
			}
			for depth < t.Gen {
				run := runs[depth]
				runs[depth] = nil
				var prev int
				if len(run) == 1 && run[0].Exp == 1 {
					prev = run[0].Gen
				} else {
					prev = seal(depth, Formula{Terms: run})
				}
				depth++
				runs[depth] = append(runs[depth], group.Term{Gen: prev, Exp: 1})
			}
			runs[depth] = append(runs[depth], group.Term{Gen: depth, Exp: t.Exp})
		}
		seal(depth, Formula{Terms: runs[depth], IsRelation: true})
		runs[depth] = nil
	}

	s := &Schedule{
		NumGenerators: nGen,
		Counts:        make([]int, nGen+1),
		names:         p.GeneratorNames(),
	}
	reindex := make([]int, nSeen)
	next := nGen
	for d := range found {
		slices.SortFunc(found[d], func(a, b entry) int { return compareFormulas(a.f, b.f) })
		for _, e := range found[d] {
			reindex[e.temp] = next
			next++
		}
		s.Counts[d+1] = s.Counts[d] + len(found[d])
	}

	s.Formulas = make([]Formula, 0, s.Counts[nGen])
	for d := range found {
		for _, e := range found[d] {
			terms := make(group.Word, len(e.f.Terms))
			for i, t := range e.f.Terms {
				if t.Gen >= nGen {
					t.Gen = reindex[t.Gen]
				}
				terms[i] = t
			}
			s.Formulas = append(s.Formulas, Formula{Terms: terms, IsRelation: e.f.IsRelation})
		}
	}

	for outer := len(s.Formulas) - 1; outer >= 0; outer-- {
		for inner := outer - 1; inner >= 0; inner-- {
			s.Formulas[outer].tryReplace(s.Formulas[inner].Terms, inner+nGen)
		}
	}
	return s, nil
}

// Range returns the index range [lo, hi) of the formulas computed at depth d.
func (s *Schedule) Range(d int) (lo, hi int) {
	return s.Counts[d], s.Counts[d+1]
}

// Len returns the total number of formulas.
func (s *Schedule) Len() int { return len(s.Formulas) }

// NumRelations returns the number of distinct relation formulas.
func (s *Schedule) NumRelations() int {
	n := 0
	for _, f := range s.Formulas {
		if f.IsRelation {
			n++
		}
	}
	return n
}

// Equal reports whether s and t have identical formulas and depth ranges.
func (s *Schedule) Equal(t *Schedule) bool {
	if s.NumGenerators != t.NumGenerators || !slices.Equal(s.Counts, t.Counts) || len(s.Formulas) != len(t.Formulas) {
		return false
	}
	for i := range s.Formulas {
		a, b := s.Formulas[i], t.Formulas[i]
		if a.IsRelation != b.IsRelation || !a.Terms.Equal(b.Terms) {
			return false
		}
	}
	return true
}

// symbol names generator or formula index i.
func (s *Schedule) symbol(i int) string {
	if i < s.NumGenerators {
		return s.names[i]
	}
	return fmt.Sprintf("f%d", i-s.NumGenerators)
}

// FormatFormula writes formula i with generator names and f<k> for
// references to formula k.
func (s *Schedule) FormatFormula(i int) string {
	terms := s.Formulas[i].Terms
	if len(terms) == 0 {
		return "1"
	}
	parts := make([]string, len(terms))
	for j, t := range terms {
		parts[j] = s.symbol(t.Gen)
		if t.Exp != 1 {
			parts[j] += fmt.Sprintf("^%d", t.Exp)
		}
	}
	return strings.Join(parts, " ")
}

// Dump writes a human-readable description of the schedule to w: one
// section per depth listing the formulas computed there, with relations
// marked by an asterisk.
func (s *Schedule) Dump(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "generators: %d\n", s.NumGenerators)
	fmt.Fprintf(&b, "formulas: %d (%d relations)\n", s.Len(), s.NumRelations())
	for d := 0; d < s.NumGenerators; d++ {
		lo, hi := s.Range(d)
		fmt.Fprintf(&b, "depth %d (%s):", d, s.names[d])
		if lo == hi {
			b.WriteString(" -\n")
			continue
		}
		b.WriteByte('\n')
		for i := lo; i < hi; i++ {
			mark := " "
			if s.Formulas[i].IsRelation {
				mark = "*"
			}
			fmt.Fprintf(&b, "  %s f%d := %s\n", mark, i, s.FormatFormula(i))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
