package group

import (
	"cmp"
	"fmt"
	"math"
	"strings"
)

// MaxExponent bounds the absolute value of every exponent in a valid
// presentation. Subgroup construction walks a term one sheet per unit of
// exponent.
const MaxExponent = 1 << 20

// Term is a generator raised to an integer power. A negative exponent
// denotes the inverse. In a schedule, Gen may also index a cached formula
// (Gen >= the number of generators).
type Term struct {
	Gen int
	Exp int
}

// Inverse returns the term with the exponent negated.
func (t Term) Inverse() Term { return Term{Gen: t.Gen, Exp: -t.Exp} }

// Compare orders terms by generator, then by exponent.
func (t Term) Compare(u Term) int {
	if c := cmp.Compare(t.Gen, u.Gen); c != 0 {
		return c
	}
	return cmp.Compare(t.Exp, u.Exp)
}

// Word is a product of terms read left to right.
//
// A Word built with [Word.AddTermLast] never holds two adjacent terms with
// the same generator and never holds a zero exponent. Words assembled by
// hand may violate this; [Word.Reduce] restores it.
type Word []Term

// NewWord builds a word from alternating generator/exponent pairs, merging
// adjacent terms as it goes:
//
//	NewWord(0, 1, 1, 1, 0, -1, 1, -1) // a b a^-1 b^-1
func NewWord(pairs ...int) Word {
	if len(pairs)%2 != 0 {
		panic("group: NewWord needs generator/exponent pairs")
	}
	var w Word
	for i := 0; i < len(pairs); i += 2 {
		w.AddTermLast(Term{Gen: pairs[i], Exp: pairs[i+1]})
	}
	return w
}

// Clone returns a copy of w that shares no storage with it.
func (w Word) Clone() Word {
	if w == nil {
		return nil
	}
	return append(Word(nil), w...)
}

// IsEmpty reports whether w is the empty word.
func (w Word) IsEmpty() bool { return len(w) == 0 }

// WordLength returns the sum of the absolute values of the exponents, which
// is the length of w written out letter by letter.
func (w Word) WordLength() int {
	n := 0
	for _, t := range w {
		if t.Exp < 0 {
			n -= t.Exp
		} else {
			n += t.Exp
		}
	}
	return n
}

// AddTermLast appends t to w. If the last term of w has the same generator,
// the exponents are added instead, and a term whose exponent becomes zero is
// removed. Terms with a zero exponent are ignored. Exponents whose sum would
// overflow an int are kept as separate terms.
func (w *Word) AddTermLast(t Term) {
	if t.Exp == 0 {
		return
	}
	if n := len(*w); n > 0 && (*w)[n-1].Gen == t.Gen && !addOverflows((*w)[n-1].Exp, t.Exp) {
		(*w)[n-1].Exp += t.Exp
		if (*w)[n-1].Exp == 0 {
			*w = (*w)[:n-1]
		}
		return
	}
	*w = append(*w, t)
}

// CycleLeft moves the first term of w to the end in place. Cycling a
// relation does not change the normal subgroup it generates.
func (w Word) CycleLeft() {
	if len(w) < 2 {
		return
	}
	first := w[0]
	copy(w, w[1:])
	w[len(w)-1] = first
}

// Inverse returns w⁻¹: the terms reversed with their exponents negated.
func (w Word) Inverse() Word {
	out := make(Word, len(w))
	for i, t := range w {
		out[len(w)-1-i] = t.Inverse()
	}
	return out
}

// Pow returns w^e. A negative e uses the inverse of w. It panics if the
// exponent of a single-term w times e overflows an int.
func (w Word) Pow(e int) Word {
	if len(w) == 1 {
		x := w[0].Exp
		if x != 0 && e != 0 && (abs(x) > math.MaxInt/abs(e) || x == math.MinInt || e == math.MinInt) {
			panic("group: exponent overflow in Pow")
		}
		var out Word
		out.AddTermLast(Term{Gen: w[0].Gen, Exp: x * e})
		return out
	}
	base := w
	if e < 0 {
		base, e = w.Inverse(), -e
	}
	var out Word
	for ; e > 0; e-- {
		for _, t := range base {
			out.AddTermLast(t)
		}
	}
	return out
}

// MaxExp returns the largest absolute exponent in w.
func (w Word) MaxExp() int {
	m := 0
	for _, t := range w {
		if t.Exp == math.MinInt {
			return math.MaxInt
		}
		m = max(m, abs(t.Exp))
	}
	return m
}

func addOverflows(a, b int) bool {
	return (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b)
}

// Reduce returns the freely reduced form of w: adjacent terms with equal
// generators merged and zero exponents dropped.
func (w Word) Reduce() Word {
	var out Word
	for _, t := range w {
		out.AddTermLast(t)
	}
	return out
}

// MaxGen returns the largest generator used by w, or -1 if w is empty.
func (w Word) MaxGen() int {
	m := -1
	for _, t := range w {
		m = max(m, t.Gen)
	}
	return m
}

// Uses reports whether generator g occurs in w.
func (w Word) Uses(g int) bool {
	for _, t := range w {
		if t.Gen == g {
			return true
		}
	}
	return false
}

// Equal reports whether w and v have the same terms in the same order.
func (w Word) Equal(v Word) bool {
	if len(w) != len(v) {
		return false
	}
	for i := range w {
		if w[i] != v[i] {
			return false
		}
	}
	return true
}

// Compare orders words lexicographically by their terms, with a proper
// prefix ordered first.
func (w Word) Compare(v Word) int {
	for i := 0; i < len(w) && i < len(v); i++ {
		if c := w[i].Compare(v[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(w), len(v))
}

// Relabel returns a copy of w with every generator g replaced by mapping[g].
func (w Word) Relabel(mapping []int) Word {
	out := make(Word, len(w))
	for i, t := range w {
		out[i] = Term{Gen: mapping[t.Gen], Exp: t.Exp}
	}
	return out
}

// Format writes w using the given generator names, for example
// "a^2 b^-1 a". Generators without a name fall back to [DefaultName].
// The empty word is written "1".
func (w Word) Format(names []string) string {
	if len(w) == 0 {
		return "1"
	}
	var b strings.Builder
	for i, t := range w {
		if i > 0 {
			b.WriteByte(' ')
		}
		if t.Gen < len(names) {
			b.WriteString(names[t.Gen])
		} else {
			b.WriteString(DefaultName(t.Gen))
		}
		if t.Exp != 1 {
			fmt.Fprintf(&b, "^%d", t.Exp)
		}
	}
	return b.String()
}

// String formats w with default generator names.
func (w Word) String() string { return w.Format(nil) }

// DefaultName returns the name used for generator g when a presentation
// carries no names: g0, g1, ...
func DefaultName(g int) string {
	return fmt.Sprintf("g%d", g)
}
