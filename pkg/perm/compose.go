package perm

// composer is the composition strategy chosen once per degree when the
// tables are built. The search calls it through Group.Compose, so choosing a
// strategy costs one indirect call rather than a branch per product.
type composer interface {
	compose(p, q Perm) Perm
}

// tableComposer looks products up in a precomputed n! × n! table.
type tableComposer struct {
	size  int
	table []Perm
}

func newTableComposer(g *Group) *tableComposer {
	c := &tableComposer{size: g.size, table: make([]Perm, g.size*g.size)}
	direct := newDirectComposer(g)
	for p := 0; p < g.size; p++ {
		for q := 0; q < g.size; q++ {
			c.table[p*g.size+q] = direct.compose(Perm(p), Perm(q))
		}
	}
	return c
}

func (c *tableComposer) compose(p, q Perm) Perm {
	return c.table[int(p)*c.size+int(q)]
}

// directComposer composes image arrays and ranks the result.
type directComposer struct {
	n      int
	images []uint8
}

func newDirectComposer(g *Group) *directComposer {
	return &directComposer{n: g.n, images: g.images}
}

func (c *directComposer) compose(p, q Perm) Perm {
	var buf [MaxDegree]int
	r := buf[:c.n]
	pi := c.images[int(p)*c.n : int(p)*c.n+c.n]
	qi := c.images[int(q)*c.n : int(q)*c.n+c.n]
	for x := range r {
		r[x] = int(pi[qi[x]])
	}
	return Perm(Rank(r))
}
