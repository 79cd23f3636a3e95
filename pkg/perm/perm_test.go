package perm

import (
	"slices"
	"sync"
	"testing"

	"github.com/matzehuels/covertower/pkg/errors"
)

func TestSeq(t *testing.T) {
	if got := Seq(4); !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Errorf("Seq(4) = %v", got)
	}
	if got := Seq(0); len(got) != 0 {
		t.Errorf("Seq(0) = %v, want empty", got)
	}
	if got := Seq(-3); len(got) != 0 {
		t.Errorf("Seq(-3) = %v, want empty", got)
	}
}

func TestFactorial(t *testing.T) {
	want := []int{1, 1, 2, 6, 24, 120, 720, 5040}
	for n, w := range want {
		if got := Factorial(n); got != w {
			t.Errorf("Factorial(%d) = %d, want %d", n, got, w)
		}
	}
}

func TestNextLexAndRank(t *testing.T) {
	for n := 1; n <= 5; n++ {
		p := Seq(n)
		count := 0
		for {
			if r := Rank(p); r != count {
				t.Fatalf("n=%d: Rank(%v) = %d, want %d", n, p, r, count)
			}
			count++
			if !NextLex(p) {
				break
			}
		}
		if count != Factorial(n) {
			t.Errorf("n=%d: visited %d permutations, want %d", n, count, Factorial(n))
		}
		if !slices.Equal(p, Seq(n)) {
			t.Errorf("n=%d: NextLex should wrap to identity, got %v", n, p)
		}
	}
}

func TestIsPermutation(t *testing.T) {
	tests := []struct {
		input []int
		want  bool
	}{
		{[]int{}, true},
		{[]int{0}, true},
		{[]int{2, 0, 1}, true},
		{[]int{0, 0, 1}, false},
		{[]int{0, 3, 1}, false},
		{[]int{-1, 0}, false},
	}
	for _, tt := range tests {
		if got := IsPermutation(tt.input); got != tt.want {
			t.Errorf("IsPermutation(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSymUnsupportedDegree(t *testing.T) {
	for _, n := range []int{0, -1, MaxDegree + 1} {
		_, err := Sym(n)
		if !errors.Is(err, errors.ErrCodeUnsupportedDegree) {
			t.Errorf("Sym(%d) error = %v, want %s", n, err, errors.ErrCodeUnsupportedDegree)
		}
	}
}

func TestSymIsCached(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Group, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = MustSym(4)
		}(i)
	}
	wg.Wait()
	for i := 1; i < len(got); i++ {
		if got[i] != got[0] {
			t.Fatal("Sym(4) returned different tables across calls")
		}
	}
}

func TestGroupBasics(t *testing.T) {
	for n := 1; n <= 6; n++ {
		g := MustSym(n)
		if g.Degree() != n || g.Size() != Factorial(n) {
			t.Fatalf("Sym(%d): degree %d size %d", n, g.Degree(), g.Size())
		}
		for r := 0; r < g.Size(); r++ {
			p := Perm(r)
			if got := g.Compose(p, g.Inverse(p)); !got.IsIdentity() {
				t.Fatalf("n=%d: p∘p⁻¹ = %d for p=%d", n, got, p)
			}
			if got := g.Pow(p, g.Order(p)); !got.IsIdentity() {
				t.Fatalf("n=%d: p^order(p) != identity for p=%d", n, p)
			}
			for x := 0; x < n; x++ {
				if g.PreImage(p, g.Image(p, x)) != x {
					t.Fatalf("n=%d: PreImage(Image(%d)) != %d for p=%d", n, x, x, p)
				}
			}
			back, err := g.FromImages(g.Images(p))
			if err != nil || back != p {
				t.Fatalf("n=%d: FromImages(Images(%d)) = %d, %v", n, p, back, err)
			}
		}
	}
}

func TestComposeConvention(t *testing.T) {
	g := MustSym(3)
	p, _ := g.FromImages([]int{1, 0, 2}) // (0 1)
	q, _ := g.FromImages([]int{0, 2, 1}) // (1 2)

	// q is applied first.
	if got := g.Images(g.Compose(p, q)); !slices.Equal(got, []int{1, 2, 0}) {
		t.Errorf("Compose(p, q) = %v, want [1 2 0]", got)
	}
	if got := g.Images(g.Compose(q, p)); !slices.Equal(got, []int{2, 0, 1}) {
		t.Errorf("Compose(q, p) = %v, want [2 0 1]", got)
	}
}

func TestTableMatchesDirect(t *testing.T) {
	g := MustSym(5)
	direct := newDirectComposer(g)
	for p := 0; p < g.Size(); p += 7 {
		for q := 0; q < g.Size(); q += 11 {
			if a, b := g.Compose(Perm(p), Perm(q)), direct.compose(Perm(p), Perm(q)); a != b {
				t.Fatalf("table %d != direct %d for %d∘%d", a, b, p, q)
			}
		}
	}
}

func TestDegreeSevenDirect(t *testing.T) {
	g := MustSym(7)
	if _, ok := g.comp.(*directComposer); !ok {
		t.Fatalf("degree 7 should compose directly, got %T", g.comp)
	}
	for r := 0; r < g.Size(); r += 97 {
		p := Perm(r)
		if !g.Compose(p, g.Inverse(p)).IsIdentity() {
			t.Fatalf("p∘p⁻¹ != identity for p=%d", p)
		}
	}
	if got := g.MaxAut(); got != 240 {
		t.Errorf("MaxAut() = %d, want 240", got)
	}
}

func TestPow(t *testing.T) {
	g := MustSym(4)
	c, _ := g.FromImages([]int{1, 2, 3, 0})

	tests := []struct {
		exp  int
		want []int
	}{
		{0, []int{0, 1, 2, 3}},
		{1, []int{1, 2, 3, 0}},
		{2, []int{2, 3, 0, 1}},
		{-1, []int{3, 0, 1, 2}},
		{-2, []int{2, 3, 0, 1}},
		{5, []int{1, 2, 3, 0}},
		{-7, []int{1, 2, 3, 0}},
	}
	for _, tt := range tests {
		if got := g.Images(g.Pow(c, tt.exp)); !slices.Equal(got, tt.want) {
			t.Errorf("Pow(c, %d) = %v, want %v", tt.exp, got, tt.want)
		}
	}
}

func TestNextWraps(t *testing.T) {
	g := MustSym(3)
	p := Identity
	for i := 1; i < g.Size(); i++ {
		p = g.Next(p)
		if p.IsIdentity() {
			t.Fatalf("Next reached identity after %d steps", i)
		}
	}
	if !g.Next(p).IsIdentity() {
		t.Error("Next of the last permutation should be the identity")
	}
}

func TestFromImagesInvalid(t *testing.T) {
	g := MustSym(3)
	for _, images := range [][]int{{0, 1}, {0, 1, 1}, {0, 1, 3}} {
		if _, err := g.FromImages(images); !errors.Is(err, errors.ErrCodeInvalidPermutation) {
			t.Errorf("FromImages(%v) error = %v", images, err)
		}
	}
}

func TestFormat(t *testing.T) {
	g := MustSym(5)
	tests := []struct {
		images []int
		want   string
	}{
		{[]int{0, 1, 2, 3, 4}, "()"},
		{[]int{1, 0, 2, 3, 4}, "(0 1)"},
		{[]int{1, 2, 0, 4, 3}, "(0 1 2)(3 4)"},
		{[]int{4, 0, 1, 2, 3}, "(0 4 3 2 1)"},
	}
	for _, tt := range tests {
		p, err := g.FromImages(tt.images)
		if err != nil {
			t.Fatal(err)
		}
		if got := g.Format(p); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.images, got, tt.want)
		}
	}
}
