package covers

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/covertower/pkg/errors"
	"github.com/matzehuels/covertower/pkg/group"
	"github.com/matzehuels/covertower/pkg/perm"
)

// Edge is a (generator, sheet) pair: the edge of the cover leaving Sheet
// along generator Gen. Edges are ordered by Gen*degree + Sheet.
type Edge struct {
	Gen   int
	Sheet int
}

// Cover is one transitive permutation representation found by the search,
// with the presentation of the corresponding subgroup.
//
// All generator indices are those of the presentation passed to
// [Enumerate].
type Cover struct {
	// Degree is the number of sheets, which is the index of Subgroup.
	Degree int

	// Reps holds the permutation of the sheets assigned to each generator.
	Reps []perm.Perm

	// Tree holds the Degree-1 edges of the spanning tree rooted at sheet 0,
	// sorted. Their subgroup generators are set to the identity.
	Tree []Edge

	// Generators maps each generator of Subgroup to the edge it stands for.
	Generators []Edge

	// Subgroup is the presentation of the stabiliser of sheet 0.
	Subgroup *group.Presentation

	g      *perm.Group
	parent *group.Presentation
}

// spanningTree runs a depth-first search over the sheets from sheet 0 and
// writes the first edge reaching each other sheet into tree, which must
// have length n-1. It reports whether every sheet was reached. The entries
// of tree are in discovery order.
func spanningTree(g *perm.Group, reps []perm.Perm, tree []Edge) bool {
	n := g.Degree()
	var seen [perm.MaxDegree]bool
	var stack [perm.MaxDegree]int
	seen[0] = true
	found, top := 1, 1
	for found < n && top > 0 {
		top--
		from := stack[top]
		for i, rep := range reps {
			to := g.Image(rep, from)
			if seen[to] {
				continue
			}
			seen[to] = true
			stack[top] = to
			top++
			tree[found-1] = Edge{Gen: i, Sheet: from}
			found++
		}
	}
	return found == n
}

// buildCover builds the subgroup presentation for a transitive assignment.
//
// Subgroup generators are the pairs (generator, sheet) with the tree edges
// removed, numbered densely in (generator, sheet) order. Each relation is
// walked from every starting sheet: a positive power emits the edge at the
// current sheet and then moves along it; a negative power first moves back
// and then emits the inverse edge. Tree edges are dropped, adjacent equal
// generators merge, and words that come out empty are discarded.
func buildCover(g *perm.Group, p *group.Presentation, reps []perm.Perm, tree []Edge) *Cover {
	n := g.Degree()
	nGen := len(reps)

	sorted := slices.Clone(tree)
	slices.SortFunc(sorted, func(a, b Edge) int {
		return (a.Gen*n + a.Sheet) - (b.Gen*n + b.Sheet)
	})

	total := n * nGen
	removed := total
	rewrite := make([]int, total)
	gens := make([]Edge, 0, total-(n-1))
	treeIdx := 0
	for i := range rewrite {
		if treeIdx < len(sorted) && sorted[treeIdx].Gen*n+sorted[treeIdx].Sheet == i {
			rewrite[i] = removed
			treeIdx++
			continue
		}
		rewrite[i] = i - treeIdx
		gens = append(gens, Edge{Gen: i / n, Sheet: i % n})
	}

	sub := &group.Presentation{NumGenerators: len(gens), Names: subgroupNames(p, gens)}
	tr := &tracer{g: g, reps: reps, rewrite: rewrite, removed: removed}
	for _, rel := range p.Relations {
		for start := range n {
			var w group.Word
			sheet := start
			for _, t := range rel {
				sheet = tr.power(&w, t.Gen, sheet, t.Exp)
			}
			if !w.IsEmpty() {
				sub.AddRelation(w)
			}
		}
	}

	return &Cover{
		Degree:     n,
		Reps:       slices.Clone(reps),
		Tree:       sorted,
		Generators: gens,
		Subgroup:   sub,
		g:          g,
		parent:     p,
	}
}

// tracer follows words through the sheets of a cover and records the
// subgroup generators crossed on the way.
type tracer struct {
	g       *perm.Group
	reps    []perm.Perm
	rewrite []int // (gen*degree + sheet) to subgroup generator
	removed int   // rewrite value of a tree edge
}

// step crosses one edge of generator gen from sheet, forwards if sign is
// positive and backwards otherwise, and returns the sheet reached.
func (tr *tracer) step(w *group.Word, gen, sheet, sign int) int {
	n := tr.g.Degree()
	if sign > 0 {
		if k := tr.rewrite[gen*n+sheet]; k != tr.removed {
			w.AddTermLast(group.Term{Gen: k, Exp: 1})
		}
		return tr.g.Image(tr.reps[gen], sheet)
	}
	sheet = tr.g.PreImage(tr.reps[gen], sheet)
	if k := tr.rewrite[gen*n+sheet]; k != tr.removed {
		w.AddTermLast(group.Term{Gen: k, Exp: -1})
	}
	return sheet
}

// power appends the word traced by gen^e from sheet and returns the sheet
// reached. The cycle of gen through sheet is traced once and whole turns
// repeat its word; a one-term turn is raised to the number of turns.
func (tr *tracer) power(w *group.Word, gen, sheet, e int) int {
	sign, steps := 1, e
	if e < 0 {
		sign, steps = -1, -e
	}
	if steps == 0 {
		return sheet
	}

	var turn group.Word
	at, length := sheet, 0
	for {
		at = tr.step(&turn, gen, at, sign)
		length++
		if at == sheet || length == steps {
			break
		}
	}
	if length == steps {
		for _, t := range turn {
			w.AddTermLast(t)
		}
		return at
	}

	turns, rest := steps/length, steps%length
	if len(turn) == 1 {
		w.AddTermLast(group.Term{Gen: turn[0].Gen, Exp: turn[0].Exp * turns})
	} else {
		for range turns {
			for _, t := range turn {
				w.AddTermLast(t)
			}
		}
	}
	for range rest {
		at = tr.step(w, gen, at, sign)
	}
	return at
}

// NewCover builds the cover of p given by explicit image arrays, one per
// generator, all of the same length. The arrays must be permutations that
// satisfy every relation of p and act transitively. Covers read back from an
// export are rebuilt this way.
func NewCover(p *group.Presentation, images [][]int) (*Cover, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(images) != p.NumGenerators || len(images) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"got %d permutations for %d generators", len(images), p.NumGenerators)
	}
	g, err := perm.Sym(len(images[0]))
	if err != nil {
		return nil, err
	}
	reps := make([]perm.Perm, len(images))
	for i, im := range images {
		if reps[i], err = g.FromImages(im); err != nil {
			return nil, err
		}
	}

	c := &Cover{Degree: g.Degree(), Reps: reps, g: g, parent: p}
	for i, rel := range p.Relations {
		if !c.Evaluate(rel).IsIdentity() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "relation %d (%s) does not hold", i, rel.Format(p.Names))
		}
	}
	tree := make([]Edge, g.Degree()-1)
	if !spanningTree(g, reps, tree) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "the action is not transitive")
	}
	return buildCover(g, p, reps, tree), nil
}

// subgroupNames names subgroup generator (g, s) as "<name of g>_<s>". It
// returns nil if any such name would be too long to be valid.
func subgroupNames(p *group.Presentation, gens []Edge) []string {
	names := make([]string, len(gens))
	for k, e := range gens {
		names[k] = fmt.Sprintf("%s_%d", p.Name(e.Gen), e.Sheet)
		if errors.ValidateGeneratorName(names[k]) != nil {
			return nil
		}
	}
	return names
}

// Presentation returns the presentation the cover was found for.
func (c *Cover) Presentation() *group.Presentation { return c.parent }

// Images returns the image array of the permutation assigned to generator g.
func (c *Cover) Images(g int) []int { return c.g.Images(c.Reps[g]) }

// FormatRep returns the permutation assigned to generator g in cycle
// notation.
func (c *Cover) FormatRep(g int) string { return c.g.Format(c.Reps[g]) }

// Index returns the index of the subgroup, which is the degree.
func (c *Cover) Index() int { return c.Degree }

// Transversal returns, for each sheet s, the word along the spanning tree
// that carries sheet 0 to sheet s. The word for sheet 0 is empty.
func (c *Cover) Transversal() []group.Word {
	words := make([]group.Word, c.Degree)
	known := make([]bool, c.Degree)
	known[0] = true
	for remaining := c.Degree - 1; remaining > 0; {
		progress := false
		for _, e := range c.Tree {
			to := c.g.Image(c.Reps[e.Gen], e.Sheet)
			if !known[e.Sheet] || known[to] {
				continue
			}
			w := words[e.Sheet].Clone()
			w.AddTermLast(group.Term{Gen: e.Gen, Exp: 1})
			words[to], known[to] = w, true
			remaining--
			progress = true
		}
		if !progress {
			break
		}
	}
	return words
}

// Schreier returns the word in the parent group that subgroup generator k
// stands for: t(s) g t(g·s)⁻¹, where (g, s) is Generators[k] and t is the
// [Cover.Transversal].
func (c *Cover) Schreier(k int) group.Word {
	return c.schreier(c.Transversal(), k)
}

func (c *Cover) schreier(trans []group.Word, k int) group.Word {
	e := c.Generators[k]
	to := c.g.Image(c.Reps[e.Gen], e.Sheet)
	w := trans[e.Sheet].Clone()
	w.AddTermLast(group.Term{Gen: e.Gen, Exp: 1})
	for _, t := range trans[to].Inverse() {
		w.AddTermLast(t)
	}
	return w
}

// Expand rewrites a word in the subgroup generators as a word in the parent
// group by substituting each generator's Schreier word.
func (c *Cover) Expand(w group.Word) group.Word {
	trans := c.Transversal()
	var out group.Word
	for _, t := range w {
		for _, u := range c.schreier(trans, t.Gen).Pow(t.Exp) {
			out.AddTermLast(u)
		}
	}
	return out
}

// Evaluate returns the permutation of the sheets that the parent-group word
// w acts as under the cover's representatives, reading w left to right.
func (c *Cover) Evaluate(w group.Word) perm.Perm {
	comb := perm.Identity
	for _, t := range w {
		comb = c.g.Compose(c.g.Pow(c.Reps[t.Gen], t.Exp), comb)
	}
	return comb
}

// String summarises the cover: the representatives followed by the
// subgroup presentation.
func (c *Cover) String() string {
	var b strings.Builder
	for g := range c.Reps {
		if g > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s -> %s", c.parent.Name(g), c.FormatRep(g))
	}
	fmt.Fprintf(&b, "; subgroup %s", c.Subgroup)
	return b.String()
}
