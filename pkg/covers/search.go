package covers

import (
	"iter"
	"time"

	"github.com/matzehuels/covertower/pkg/group"
	"github.com/matzehuels/covertower/pkg/group/transform"
	"github.com/matzehuels/covertower/pkg/perm"
)

// Enumerate finds every transitive permutation representation of the group
// presented by p on degree points, up to conjugacy, and calls action once
// for each with the corresponding index-degree subgroup. It returns the
// number of covers delivered.
//
// action runs synchronously on the calling goroutine. Each [Cover] it
// receives is freshly allocated and may be kept.
//
// A presentation with no generators has no transitive action and yields 0
// regardless of degree. Otherwise degree must lie in [1, perm.MaxDegree];
// an UNSUPPORTED_DEGREE error is returned before any work is done. An
// invalid presentation yields an INVALID_PRESENTATION error.
//
// p is not modified.
func Enumerate(p *group.Presentation, degree int, action func(*Cover), opts ...Option) (int, error) {
	return enumerate(p, degree, newConfig(opts), func(c *Cover) bool {
		action(c)
		return true
	})
}

// All returns an iterator over the covers [Enumerate] would deliver.
// Breaking out of the loop stops the search. If the input is rejected the
// iterator yields a single nil cover with the error.
func All(p *group.Presentation, degree int, opts ...Option) iter.Seq2[*Cover, error] {
	return func(yield func(*Cover, error) bool) {
		stopped := false
		_, err := enumerate(p, degree, newConfig(opts), func(c *Cover) bool {
			if !yield(c, nil) {
				stopped = true
			}
			return !stopped
		})
		if err != nil && !stopped {
			yield(nil, err)
		}
	}
}

// Count returns the number of conjugacy classes of transitive
// representations on degree points. It runs the same search as [Enumerate]
// but builds no subgroup presentations.
func Count(p *group.Presentation, degree int, opts ...Option) (int, error) {
	return enumerate(p, degree, newConfig(opts), nil)
}

func enumerate(p *group.Presentation, degree int, cfg *config, emit func(*Cover) bool) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	*cfg.stats = Stats{}
	if p.NumGenerators == 0 {
		return 0, nil
	}
	g, err := perm.Sym(degree)
	if err != nil {
		return 0, err
	}

	reordered, mapping := transform.Minimax(p)
	sched, err := NewSchedule(reordered)
	if err != nil {
		return 0, err
	}
	cfg.stats.Formulas = sched.Len()
	cfg.logger.Debug("schedule built",
		"generators", sched.NumGenerators,
		"formulas", sched.Len(),
		"relations", sched.NumRelations(),
		"degree", degree)

	start := time.Now()
	s := newSearch(g, sched, p, mapping, cfg.stats)
	s.run(emit)
	cfg.logger.Debug("search finished",
		"degree", degree,
		"covers", cfg.stats.Covers,
		"nodes", cfg.stats.Nodes,
		"relation_rejects", cfg.stats.RelationRejects,
		"minimality_rejects", cfg.stats.MinimalityRejects,
		"non_transitive", cfg.stats.NonTransitive,
		"elapsed", time.Since(start))
	return cfg.stats.Covers, nil
}

// frame is the search state for one generator (in search order).
type frame struct {
	rep  perm.Perm
	full bool        // the automorphism group so far is all of S_n
	aut  []perm.Perm // otherwise, its elements; backed by the arena
}

// search holds all mutable state of one enumeration. Everything is
// allocated in newSearch; the main loop allocates only when a cover is
// delivered.
type search struct {
	g        *perm.Group
	n        int
	nGen     int
	sched    *Schedule
	computed []perm.Perm
	frames   []frame
	stats    *Stats

	// Delivery works in the caller's labels.
	pres    *group.Presentation
	mapping []int       // caller generator -> search generator
	reps    []perm.Perm // scratch, indexed by caller generator
}

func newSearch(g *perm.Group, sched *Schedule, p *group.Presentation, mapping []int, stats *Stats) *search {
	nGen := sched.NumGenerators
	s := &search{
		g:        g,
		n:        g.Degree(),
		nGen:     nGen,
		sched:    sched,
		computed: make([]perm.Perm, sched.Len()),
		frames:   make([]frame, nGen),
		stats:    stats,
		pres:     p,
		mapping:  mapping,
		reps:     make([]perm.Perm, nGen),
	}
	maxAut := g.MaxAut()
	arena := make([]perm.Perm, nGen*maxAut)
	for i := range s.frames {
		s.frames[i].aut = arena[i*maxAut : i*maxAut : (i+1)*maxAut]
	}
	return s
}

// run drives the backtracking search until the space is exhausted or emit
// returns false. With a nil emit covers are counted but not built.
func (s *search) run(emit func(*Cover) bool) {
	pos := 0
	for {
		s.stats.Nodes++
		if s.computeFor(pos) && s.minimal(pos) {
			pos++
			if pos < s.nGen {
				continue
			}
			s.stats.Candidates++
			if c, ok := s.leaf(emit != nil); ok {
				s.stats.Covers++
				if emit != nil && !emit(c) {
					return
				}
			}
			pos--
		}

		for {
			f := &s.frames[pos]
			f.rep = s.g.Next(f.rep)
			if !f.rep.IsIdentity() {
				break
			}
			if pos == 0 {
				return
			}
			pos--
		}
	}
}

// computeFor evaluates the formulas at depth pos and reports whether every
// relation among them holds.
func (s *search) computeFor(pos int) bool {
	lo, hi := s.sched.Range(pos)
	for i := lo; i < hi; i++ {
		if !s.computePiece(i) {
			s.stats.RelationRejects++
			return false
		}
	}
	return true
}

// computePiece evaluates formula i left to right. A relation that does not
// evaluate to the identity is reported and its value is not stored.
func (s *search) computePiece(i int) bool {
	f := &s.sched.Formulas[i]
	comb := perm.Identity
	for _, t := range f.Terms {
		var gen perm.Perm
		if t.Gen < s.nGen {
			gen = s.frames[t.Gen].rep
		} else {
			gen = s.computed[t.Gen-s.nGen]
		}
		switch t.Exp {
		case 1:
			comb = s.g.Compose(gen, comb)
		case -1:
			comb = s.g.Compose(s.g.Inverse(gen), comb)
		default:
			comb = s.g.Compose(s.g.Pow(gen, t.Exp), comb)
		}
	}
	if f.IsRelation && !comb.IsIdentity() {
		return false
	}
	s.computed[i] = comb
	return true
}

// minimal checks that the tuple of representatives chosen so far is the
// smallest in its conjugacy class, and records the automorphisms that fix
// it. Degrees 1 and 2 need no check.
func (s *search) minimal(pos int) bool {
	if s.n <= 2 {
		return true
	}
	f := &s.frames[pos]
	rep := f.rep

	if pos == 0 || s.frames[pos-1].full {
		if !s.g.IsConjugacyMinimal(rep) {
			s.stats.MinimalityRejects++
			return false
		}
		if rep.IsIdentity() {
			f.full = true
			return true
		}
		f.full = false
		f.aut = append(f.aut[:0], s.g.Aut(rep)...)
		return true
	}

	f.full = false
	f.aut = f.aut[:0]
	for _, q := range s.frames[pos-1].aut {
		conj := s.g.Conjugate(q, rep)
		if conj.Less(rep) {
			s.stats.MinimalityRejects++
			return false
		}
		if conj == rep {
			f.aut = append(f.aut, q)
		}
	}
	return true
}

// leaf handles a complete assignment and reports whether the
// representatives act transitively. The cover is built only if build is set.
func (s *search) leaf(build bool) (*Cover, bool) {
	for g, target := range s.mapping {
		s.reps[g] = s.frames[target].rep
	}
	var tree [perm.MaxDegree]Edge
	if !spanningTree(s.g, s.reps, tree[:s.n-1]) {
		s.stats.NonTransitive++
		return nil, false
	}
	if !build {
		return nil, true
	}
	return buildCover(s.g, s.pres, s.reps, tree[:s.n-1]), true
}
