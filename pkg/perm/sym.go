package perm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/matzehuels/covertower/pkg/errors"
)

// MaxDegree is the largest degree for which [Sym] builds tables.
const MaxDegree = 7

// tableDegree is the largest degree whose full product table is precomputed.
// At degree 7 the table would need 5040² entries, so composition goes
// through the image arrays instead.
const tableDegree = 6

// Perm is a permutation of a fixed degree, stored as its rank in the
// lexicographic order of image arrays. A Perm is only meaningful together
// with the [Group] of its degree.
//
// The zero value is the identity, and the integer order of ranks is the
// permutation order used for conjugacy-minimality, so comparisons and the
// identity test need no group.
type Perm uint16

// Identity is the identity permutation of every degree.
const Identity Perm = 0

// IsIdentity reports whether p is the identity.
func (p Perm) IsIdentity() bool { return p == Identity }

// Less reports whether p comes strictly before q in lexicographic order.
func (p Perm) Less(q Perm) bool { return p < q }

// Rank returns the lexicographic index of p within S_n.
func (p Perm) Rank() int { return int(p) }

// Group holds the precomputed tables for the symmetric group S_n.
//
// A Group is built once per degree by [Sym] and is immutable afterwards, so
// it may be shared freely between goroutines. Independent searches for the
// same degree share one Group.
type Group struct {
	n      int
	size   int
	images []uint8 // images[p*n+x] = p(x)
	inv    []Perm
	order  []uint8
	comp   composer

	minimal   []bool  // conjugacy-minimal flag per rank
	autIndex  []int16 // index into auts for minimal non-identity perms, else -1
	auts      [][]Perm
	maxAut    int
	minByType map[string]Perm
}

var (
	groups [MaxDegree + 1]*Group
	once   [MaxDegree + 1]sync.Once
)

// Sym returns the tables for S_n, building them on first use.
//
// The first call for a degree performs the precomputation (images,
// inverses, orders, the composition strategy and the conjugacy-minimal
// tables); later calls return the same *Group. Sym is safe for concurrent
// use.
//
// Sym returns an error with code UNSUPPORTED_DEGREE if n is outside
// [1, MaxDegree].
func Sym(n int) (*Group, error) {
	if err := errors.ValidateDegree(n, MaxDegree); err != nil {
		return nil, err
	}
	once[n].Do(func() {
		groups[n] = build(n)
	})
	return groups[n], nil
}

// MustSym is like [Sym] but panics on an unsupported degree.
// It is intended for tests and package-level initialisation.
func MustSym(n int) *Group {
	g, err := Sym(n)
	if err != nil {
		panic(err)
	}
	return g
}

func build(n int) *Group {
	size := Factorial(n)
	g := &Group{
		n:      n,
		size:   size,
		images: make([]uint8, size*n),
		inv:    make([]Perm, size),
		order:  make([]uint8, size),
	}

	p := Seq(n)
	for r := 0; r < size; r++ {
		for x, y := range p {
			g.images[r*n+x] = uint8(y)
		}
		NextLex(p)
	}

	q := make([]int, n)
	for r := 0; r < size; r++ {
		for x := 0; x < n; x++ {
			q[g.images[r*n+x]] = x
		}
		g.inv[r] = Perm(Rank(q))
	}

	if n <= tableDegree {
		g.comp = newTableComposer(g)
	} else {
		g.comp = newDirectComposer(g)
	}

	for r := 0; r < size; r++ {
		g.order[r] = uint8(g.orderOf(Perm(r)))
	}

	g.buildClasses()
	return g
}

// Degree returns n.
func (g *Group) Degree() int { return g.n }

// Size returns n!, the number of permutations in the group.
func (g *Group) Size() int { return g.size }

// Image returns p(x).
func (g *Group) Image(p Perm, x int) int {
	return int(g.images[int(p)*g.n+x])
}

// PreImage returns the point y with p(y) = x.
func (g *Group) PreImage(p Perm, x int) int {
	return int(g.images[int(g.inv[p])*g.n+x])
}

// Images returns the image array [p(0), ..., p(n-1)].
func (g *Group) Images(p Perm) []int {
	out := make([]int, g.n)
	for x := range out {
		out[x] = g.Image(p, x)
	}
	return out
}

// FromImages returns the permutation with the given image array.
func (g *Group) FromImages(images []int) (Perm, error) {
	if len(images) != g.n || !IsPermutation(images) {
		return 0, errors.New(errors.ErrCodeInvalidPermutation, "%v is not a permutation of degree %d", images, g.n)
	}
	return Perm(Rank(images)), nil
}

// Compose returns p∘q, the permutation that applies q first and then p.
func (g *Group) Compose(p, q Perm) Perm {
	return g.comp.compose(p, q)
}

// Inverse returns p⁻¹.
func (g *Group) Inverse(p Perm) Perm {
	return g.inv[p]
}

// Order returns the smallest k >= 1 with p^k = identity.
func (g *Group) Order(p Perm) int {
	return int(g.order[p])
}

// Pow returns p^e for any integer e. Exponents ±1 avoid the general path.
func (g *Group) Pow(p Perm, e int) Perm {
	switch e {
	case 1:
		return p
	case -1:
		return g.inv[p]
	case 0:
		return Identity
	}
	ord := int(g.order[p])
	e %= ord
	if e < 0 {
		e += ord
	}
	result := Identity
	for ; e > 0; e-- {
		result = g.comp.compose(p, result)
	}
	return result
}

// Conjugate returns q∘p∘q⁻¹.
func (g *Group) Conjugate(q, p Perm) Perm {
	return g.comp.compose(q, g.comp.compose(p, g.inv[q]))
}

// Next returns the permutation following p in lexicographic order, wrapping
// from the last permutation back to the identity.
func (g *Group) Next(p Perm) Perm {
	if int(p)+1 == g.size {
		return Identity
	}
	return p + 1
}

// orderOf computes the order of p by repeated composition.
func (g *Group) orderOf(p Perm) int {
	k := 1
	for q := p; !q.IsIdentity(); q = g.comp.compose(p, q) {
		k++
	}
	return k
}

// Cycles returns the cycles of p, each starting at its smallest point and
// listed in order of their smallest points. Fixed points are included as
// cycles of length one.
func (g *Group) Cycles(p Perm) [][]int {
	seen := make([]bool, g.n)
	var cycles [][]int
	for start := 0; start < g.n; start++ {
		if seen[start] {
			continue
		}
		var cycle []int
		for x := start; !seen[x]; x = g.Image(p, x) {
			seen[x] = true
			cycle = append(cycle, x)
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}

// Format returns p in cycle notation, omitting fixed points, for example
// "(0 1 2)(3 4)". The identity is written "()".
func (g *Group) Format(p Perm) string {
	var b strings.Builder
	for _, c := range g.Cycles(p) {
		if len(c) == 1 {
			continue
		}
		b.WriteByte('(')
		for i, x := range c {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%d", x)
		}
		b.WriteByte(')')
	}
	if b.Len() == 0 {
		return "()"
	}
	return b.String()
}
