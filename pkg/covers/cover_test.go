package covers

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/covertower/pkg/errors"
	"github.com/matzehuels/covertower/pkg/group"
	"github.com/matzehuels/covertower/pkg/perm"
)

func collect(t *testing.T, p *group.Presentation, degree int) []*Cover {
	t.Helper()
	var out []*Cover
	if _, err := Enumerate(p, degree, func(c *Cover) { out = append(out, c) }); err != nil {
		t.Fatalf("Enumerate(%v, %d): %v", p, degree, err)
	}
	return out
}

func TestCoverCyclicOfFreeGroup(t *testing.T) {
	got := collect(t, group.Free(1), 3)
	if len(got) != 1 {
		t.Fatalf("got %d covers, want 1", len(got))
	}
	c := got[0]
	if images := c.Images(0); !slices.Equal(images, []int{1, 2, 0}) {
		t.Errorf("Images(0) = %v, want [1 2 0]", images)
	}
	if c.Subgroup.NumGenerators != 1 || len(c.Subgroup.Relations) != 0 {
		t.Errorf("subgroup = %v, want one free generator", c.Subgroup)
	}
	if want := []Edge{{0, 0}, {0, 1}}; !slices.Equal(c.Tree, want) {
		t.Errorf("Tree = %v, want %v", c.Tree, want)
	}
	if want := []Edge{{0, 2}}; !slices.Equal(c.Generators, want) {
		t.Errorf("Generators = %v, want %v", c.Generators, want)
	}
	if got := c.Schreier(0); !got.Equal(group.NewWord(0, 3)) {
		t.Errorf("Schreier(0) = %v, want g0^3", got)
	}
}

func TestCoverCyclicQuotient(t *testing.T) {
	got := collect(t, group.MustParse("<a | a^6>"), 2)
	if len(got) != 1 {
		t.Fatalf("got %d covers, want 1", len(got))
	}
	sub := got[0].Subgroup
	if sub.NumGenerators != 1 {
		t.Fatalf("subgroup has %d generators, want 1", sub.NumGenerators)
	}
	if want := "<a_1 | a_1^3, a_1^3>"; sub.String() != want {
		t.Errorf("subgroup = %s, want %s", sub, want)
	}
}

func TestCoverS3Index3(t *testing.T) {
	got := collect(t, group.MustParse("<a, b | a^2, b^3, (a b)^2>"), 3)
	if len(got) != 1 {
		t.Fatalf("got %d covers, want 1", len(got))
	}
	c := got[0]
	if c.FormatRep(0) != "(1 2)" || c.FormatRep(1) != "(0 1 2)" {
		t.Errorf("reps = %s, %s; want (1 2), (0 1 2)", c.FormatRep(0), c.FormatRep(1))
	}
	if want := []Edge{{0, 1}, {1, 0}}; !slices.Equal(c.Tree, want) {
		t.Errorf("Tree = %v, want %v", c.Tree, want)
	}
	want := "<a_0, a_2, b_1, b_2 | a_0^2, a_2, a_2, b_1 b_2, b_1 b_2, b_2 b_1, " +
		"a_0 b_2, b_2 a_0, a_2 b_1 a_2 b_1>"
	if c.Subgroup.String() != want {
		t.Errorf("subgroup =\n%s\nwant\n%s", c.Subgroup, want)
	}
}

func TestCoverFreeGroupRank(t *testing.T) {
	for n := 1; n <= 4; n++ {
		for _, c := range collect(t, group.Free(2), n) {
			if c.Subgroup.NumGenerators != n+1 {
				t.Errorf("n=%d: subgroup has %d generators, want %d", n, c.Subgroup.NumGenerators, n+1)
			}
			if len(c.Subgroup.Relations) != 0 {
				t.Errorf("n=%d: subgroup of a free group has relations %v", n, c.Subgroup.Relations)
			}
		}
	}
}

func TestCoverShape(t *testing.T) {
	p := group.MustParse("<a, b, c | a^2, b^2, c^3, (a b)^3, a c a^-1 c>")
	for n := 1; n <= 5; n++ {
		for _, c := range collect(t, p, n) {
			if c.Degree != n || c.Index() != n {
				t.Errorf("Degree = %d, want %d", c.Degree, n)
			}
			if len(c.Tree) != n-1 {
				t.Errorf("n=%d: tree has %d edges", n, len(c.Tree))
			}
			if want := n*p.NumGenerators - (n - 1); c.Subgroup.NumGenerators != want || len(c.Generators) != want {
				t.Errorf("n=%d: %d subgroup generators, want %d", n, c.Subgroup.NumGenerators, want)
			}
			if len(c.Subgroup.Relations) > n*len(p.Relations) {
				t.Errorf("n=%d: %d subgroup relations, at most %d expected", n, len(c.Subgroup.Relations), n*len(p.Relations))
			}
			if err := c.Subgroup.Validate(); err != nil {
				t.Errorf("n=%d: invalid subgroup presentation: %v", n, err)
			}
			for _, r := range c.Subgroup.Relations {
				if r.IsEmpty() {
					t.Errorf("n=%d: empty relation kept", n)
				}
			}
			for _, e := range c.Tree {
				if slices.Contains(c.Generators, e) {
					t.Errorf("n=%d: tree edge %v is also a subgroup generator", n, e)
				}
			}
		}
	}
}

func TestCoverTransversal(t *testing.T) {
	for _, c := range collect(t, group.MustParse("<a, b | a^2, b^3>"), 5) {
		g := perm.MustSym(c.Degree)
		for s, w := range c.Transversal() {
			if got := g.Image(c.Evaluate(w), 0); got != s {
				t.Errorf("transversal word %v carries 0 to %d, want %d", w, got, s)
			}
		}
	}
}

func TestCoverSchreierWordsStabiliseRoot(t *testing.T) {
	for _, c := range collect(t, group.Free(2), 4) {
		g := perm.MustSym(c.Degree)
		for k := range c.Generators {
			if got := g.Image(c.Evaluate(c.Schreier(k)), 0); got != 0 {
				t.Errorf("Schreier(%d) moves 0 to %d", k, got)
			}
		}
	}
}

func TestCoverRelationsHold(t *testing.T) {
	p := group.MustParse("<a, b | a^3, b^2, (a b)^4, a b^-1 a^-1 b>")
	for n := 2; n <= 6; n++ {
		for _, c := range collect(t, p, n) {
			for i, r := range c.Subgroup.Relations {
				w := c.Expand(r)
				if !c.Evaluate(w).IsIdentity() {
					t.Errorf("n=%d: subgroup relation %d expands to %v, which is not trivial", n, i, w)
				}
			}
		}
	}
}

func TestCoverNamesFallBack(t *testing.T) {
	long := strings.Repeat("x", 32)
	p := group.New([]string{long}, group.NewWord(0, 2))
	got := collect(t, p, 2)
	if len(got) != 1 {
		t.Fatalf("got %d covers, want 1", len(got))
	}
	if got[0].Subgroup.Names != nil {
		t.Errorf("Names = %v, want nil for overlong names", got[0].Subgroup.Names)
	}
	if s := got[0].Subgroup.String(); s != "<g0 | g0, g0>" {
		t.Errorf("subgroup = %s", s)
	}
}

func TestSpanningTree(t *testing.T) {
	g := perm.MustSym(4)
	a, _ := g.FromImages([]int{1, 0, 2, 3})
	b, _ := g.FromImages([]int{0, 2, 3, 1})

	tree := make([]Edge, 3)
	if !spanningTree(g, []perm.Perm{a, b}, tree) {
		t.Fatal("spanningTree reported a transitive action as intransitive")
	}
	if want := []Edge{{0, 0}, {1, 1}, {1, 2}}; !slices.Equal(tree, want) {
		t.Errorf("tree = %v, want %v", tree, want)
	}

	if spanningTree(g, []perm.Perm{a, perm.Identity}, tree) {
		t.Error("spanningTree reported an intransitive action as transitive")
	}
}

func TestCoverString(t *testing.T) {
	c := collect(t, group.MustParse("<a | a^6>"), 2)[0]
	if want := "a -> (0 1); subgroup <a_1 | a_1^3, a_1^3>"; c.String() != want {
		t.Errorf("String() = %q, want %q", c.String(), want)
	}
	if c.Presentation().NumGenerators != 1 {
		t.Errorf("Presentation() = %v", c.Presentation())
	}
}

func TestNewCoverMatchesEnumeration(t *testing.T) {
	p := group.MustParse("<a, b | a^2, b^3, (a b)^2>")
	for _, degree := range []int{2, 3, 6} {
		for _, c := range collect(t, p, degree) {
			images := make([][]int, len(c.Reps))
			for g := range c.Reps {
				images[g] = c.Images(g)
			}
			back, err := NewCover(p, images)
			if err != nil {
				t.Fatalf("NewCover(%v): %v", images, err)
			}
			if back.Subgroup.String() != c.Subgroup.String() || !slices.Equal(back.Tree, c.Tree) {
				t.Errorf("rebuilt cover %v differs from %v", back, c)
			}
		}
	}
}

func TestNewCoverRejects(t *testing.T) {
	p := group.MustParse("<a, b | a^2>")
	tests := []struct {
		name   string
		images [][]int
		code   errors.Code
	}{
		{"missing generator", [][]int{{1, 0}}, errors.ErrCodeInvalidInput},
		{"not a permutation", [][]int{{0, 0}, {0, 1}}, errors.ErrCodeInvalidPermutation},
		{"length mismatch", [][]int{{1, 0}, {0, 1, 2}}, errors.ErrCodeInvalidPermutation},
		{"relation fails", [][]int{{1, 2, 0}, {0, 1, 2}}, errors.ErrCodeInvalidInput},
		{"not transitive", [][]int{{1, 0, 2}, {0, 1, 2}}, errors.ErrCodeInvalidInput},
		{"degree too large", [][]int{{0, 1, 2, 3, 4, 5, 6, 7}, {0, 1, 2, 3, 4, 5, 6, 7}}, errors.ErrCodeUnsupportedDegree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCover(p, tt.images)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestCoverLargeExponent(t *testing.T) {
	got := collect(t, group.MustParse("<a | a^1048576>"), 2)
	if len(got) != 1 {
		t.Fatalf("got %d covers, want 1", len(got))
	}
	if want := "<a_1 | a_1^524288, a_1^524288>"; got[0].Subgroup.String() != want {
		t.Errorf("subgroup = %s, want %s", got[0].Subgroup, want)
	}

	got = collect(t, group.MustParse("<a, b | a^-65535 b^65535>"), 3)
	for _, c := range got {
		for _, rel := range c.Subgroup.Relations {
			if !c.Evaluate(c.Expand(rel)).IsIdentity() {
				t.Errorf("%v: relation %v does not hold", c, rel)
			}
		}
	}
}

func TestTracerPowerMatchesSteps(t *testing.T) {
	g := perm.MustSym(4)
	var reps []perm.Perm
	for _, im := range [][]int{{1, 2, 3, 0}, {1, 0, 2, 3}} {
		r, err := g.FromImages(im)
		if err != nil {
			t.Fatal(err)
		}
		reps = append(reps, r)
	}
	// Edges (0,0), (0,1) and (1,2) are dropped.
	const removed = 8
	tr := &tracer{g: g, reps: reps, rewrite: []int{removed, removed, 0, 1, 2, 3, removed, 4}, removed: removed}

	for gen := range reps {
		for sheet := range 4 {
			for e := -11; e <= 11; e++ {
				var got group.Word
				end := tr.power(&got, gen, sheet, e)

				var want group.Word
				at, sign := sheet, 1
				if e < 0 {
					sign = -1
				}
				for range e * sign {
					at = tr.step(&want, gen, at, sign)
				}
				if !got.Equal(want) || end != at {
					t.Errorf("power(gen=%d, sheet=%d, e=%d) = %v ending at %d, want %v ending at %d",
						gen, sheet, e, got, end, want, at)
				}
			}
		}
	}
}
