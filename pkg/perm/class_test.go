package perm

import (
	"slices"
	"testing"
)

// partitions[n] is the number of integer partitions of n, which equals the
// number of conjugacy classes of S_n.
var partitions = []int{1, 1, 2, 3, 5, 7, 11, 15}

func TestMinimalCountsMatchPartitions(t *testing.T) {
	for n := 1; n <= MaxDegree; n++ {
		g := MustSym(n)
		if got := len(g.Minimal()); got != partitions[n] {
			t.Errorf("S_%d: %d minimal permutations, want %d", n, got, partitions[n])
		}
	}
}

func TestMinimalIsSmallestInClass(t *testing.T) {
	for n := 2; n <= 5; n++ {
		g := MustSym(n)
		for r := 0; r < g.Size(); r++ {
			p := Perm(r)
			smallest := p
			for q := 0; q < g.Size(); q++ {
				if c := g.Conjugate(Perm(q), p); c.Less(smallest) {
					smallest = c
				}
			}
			if g.IsConjugacyMinimal(p) != (smallest == p) {
				t.Fatalf("S_%d: IsConjugacyMinimal(%s) = %v", n, g.Format(p), g.IsConjugacyMinimal(p))
			}
			if got := g.MinimalRepresentative(p); got != smallest {
				t.Fatalf("S_%d: MinimalRepresentative(%s) = %s, want %s",
					n, g.Format(p), g.Format(got), g.Format(smallest))
			}
		}
	}
}

func TestAutIsCentraliser(t *testing.T) {
	for n := 3; n <= 6; n++ {
		g := MustSym(n)
		for _, p := range g.Minimal() {
			aut := g.Aut(p)
			if p.IsIdentity() {
				if aut != nil {
					t.Errorf("S_%d: Aut(identity) should be nil (full group)", n)
				}
				continue
			}
			if len(aut) == 0 || aut[0] != Identity {
				t.Fatalf("S_%d: Aut(%s) should start with the identity", n, g.Format(p))
			}
			if !slices.IsSorted(aut) {
				t.Errorf("S_%d: Aut(%s) not sorted", n, g.Format(p))
			}
			for _, q := range aut {
				if g.Conjugate(q, p) != p {
					t.Errorf("S_%d: %s does not fix %s", n, g.Format(q), g.Format(p))
				}
			}
			// |C(p)| = n! / |class(p)|
			classSize := 0
			for r := 0; r < g.Size(); r++ {
				if g.MinimalRepresentative(Perm(r)) == p {
					classSize++
				}
			}
			if len(aut)*classSize != g.Size() {
				t.Errorf("S_%d: |Aut(%s)| = %d, class size %d", n, g.Format(p), len(aut), classSize)
			}
		}
	}
}

func TestMaxAut(t *testing.T) {
	want := map[int]int{1: 0, 2: 2, 3: 3, 4: 8, 5: 12, 6: 48}
	for n, w := range want {
		if got := MustSym(n).MaxAut(); got != w {
			t.Errorf("S_%d: MaxAut() = %d, want %d", n, got, w)
		}
	}
}

func TestMinimalTable(t *testing.T) {
	g := MustSym(3)
	table := g.MinimalTable()

	want := map[int][]int{
		0: {AutSentinel},
		1: {0, 1, AutSentinel},
		3: {0, 3, 4, AutSentinel},
	}
	if len(table) != len(want) {
		t.Fatalf("table has %d rows, want %d: %v", len(table), len(want), table)
	}
	for rank, row := range want {
		if !slices.Equal(table[rank], row) {
			t.Errorf("row %d = %v, want %v", rank, table[rank], row)
		}
	}
}

func TestCycleType(t *testing.T) {
	g := MustSym(6)
	p, _ := g.FromImages([]int{1, 2, 0, 4, 3, 5})
	if got := g.CycleType(p); !slices.Equal(got, []int{3, 2, 1}) {
		t.Errorf("CycleType = %v, want [3 2 1]", got)
	}
}
