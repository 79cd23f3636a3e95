package group

import (
	"strings"

	"github.com/matzehuels/covertower/pkg/errors"
)

// Presentation is a finitely presented group: generators 0..NumGenerators-1
// and a list of relations, each a word equal to the identity.
//
// Names is optional. When set it holds one name per generator and is used
// by [Presentation.String] and the text format; when nil, generators are
// printed with [DefaultName].
//
// The zero value is the trivial presentation with no generators.
type Presentation struct {
	NumGenerators int
	Names         []string
	Relations     []Word
}

// New returns a presentation on the named generators with the given
// relations. The relations are stored as given.
func New(names []string, relations ...Word) *Presentation {
	return &Presentation{
		NumGenerators: len(names),
		Names:         names,
		Relations:     relations,
	}
}

// Free returns the free group on n unnamed generators.
func Free(n int) *Presentation {
	return &Presentation{NumGenerators: n}
}

// Clone returns a deep copy of p.
func (p *Presentation) Clone() *Presentation {
	out := &Presentation{NumGenerators: p.NumGenerators}
	if p.Names != nil {
		out.Names = append([]string(nil), p.Names...)
	}
	if p.Relations != nil {
		out.Relations = make([]Word, len(p.Relations))
		for i, r := range p.Relations {
			out.Relations[i] = r.Clone()
		}
	}
	return out
}

// Name returns the display name of generator g.
func (p *Presentation) Name(g int) string {
	if g < len(p.Names) {
		return p.Names[g]
	}
	return DefaultName(g)
}

// GeneratorNames returns a name for every generator, filling gaps with
// [DefaultName].
func (p *Presentation) GeneratorNames() []string {
	names := make([]string, p.NumGenerators)
	for g := range names {
		names[g] = p.Name(g)
	}
	return names
}

// AddRelation appends r to the relation list.
func (p *Presentation) AddRelation(r Word) {
	p.Relations = append(p.Relations, r)
}

// Incidence returns the relation × generator matrix whose entry [r][g] is
// true when relation r uses generator g.
func (p *Presentation) Incidence() [][]bool {
	m := make([][]bool, len(p.Relations))
	for r, rel := range p.Relations {
		m[r] = make([]bool, p.NumGenerators)
		for _, t := range rel {
			m[r][t.Gen] = true
		}
	}
	return m
}

// TotalLength returns the summed word length of all relations.
func (p *Presentation) TotalLength() int {
	n := 0
	for _, r := range p.Relations {
		n += r.WordLength()
	}
	return n
}

// Validate checks that every term refers to a generator in range and has a
// non-zero exponent no larger than [MaxExponent] in absolute value, and that
// Names, when present, has one valid name per generator.
func (p *Presentation) Validate() error {
	if p.NumGenerators < 0 {
		return errors.New(errors.ErrCodeInvalidPresentation, "negative generator count %d", p.NumGenerators)
	}
	if p.Names != nil {
		if len(p.Names) != p.NumGenerators {
			return errors.New(errors.ErrCodeInvalidPresentation,
				"%d names for %d generators", len(p.Names), p.NumGenerators)
		}
		if err := errors.ValidateGeneratorNames(p.Names); err != nil {
			return err
		}
	}
	for r, rel := range p.Relations {
		for i, t := range rel {
			if t.Gen < 0 || t.Gen >= p.NumGenerators {
				return errors.New(errors.ErrCodeInvalidPresentation,
					"relation %d term %d: generator %d out of range", r, i, t.Gen)
			}
			if t.Exp == 0 {
				return errors.New(errors.ErrCodeInvalidPresentation,
					"relation %d term %d: zero exponent", r, i)
			}
			if t.Exp > MaxExponent || t.Exp < -MaxExponent {
				return errors.New(errors.ErrCodeInvalidPresentation,
					"relation %d term %d: exponent %d exceeds ±%d", r, i, t.Exp, MaxExponent)
			}
		}
	}
	return nil
}

// Equal reports whether p and q have the same generator count and the same
// relations in the same order. Names are ignored.
func (p *Presentation) Equal(q *Presentation) bool {
	if p.NumGenerators != q.NumGenerators || len(p.Relations) != len(q.Relations) {
		return false
	}
	for i := range p.Relations {
		if !p.Relations[i].Equal(q.Relations[i]) {
			return false
		}
	}
	return true
}

// String returns p in the text format read by [ParsePresentation], for
// example "<a, b | a^2, b^3, a b a b>".
func (p *Presentation) String() string {
	names := p.GeneratorNames()
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(" |")
	for i, r := range p.Relations {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(' ')
		b.WriteString(r.Format(names))
	}
	b.WriteByte('>')
	return b.String()
}
