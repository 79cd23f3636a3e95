package group

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/matzehuels/covertower/pkg/errors"
)

// maxWordTerms bounds the size of a word produced by expanding powers of
// parenthesised subwords, so that "(a b)^100000" fails cleanly.
const maxWordTerms = 1 << 16

// ParsePresentation parses a presentation in the text format
//
//	<a, b | a^2, b^3, (a b)^2>
//
// Generators are declared before the bar; relations follow, separated by
// commas. A relation may be written as an equation "lhs = rhs", which is
// read as lhs rhs⁻¹. The bar may be omitted when there are no relations.
// See [ParseWord] for the word syntax.
//
// Errors are reported as *errors.ParseError carrying the byte offset.
func ParsePresentation(s string) (*Presentation, error) {
	ps := &parser{input: s}
	ps.skipSpace()
	if !ps.consume('<') {
		return nil, ps.errorf("expected '<'")
	}

	var names []string
	for {
		ps.skipSpace()
		if c := ps.peek(); c == '|' || c == '>' {
			break
		}
		start := ps.pos
		name, ok := ps.ident()
		if !ok {
			return nil, ps.errorf("expected generator name")
		}
		if err := errors.ValidateGeneratorName(name); err != nil {
			return nil, ps.errorAt(start, errors.UserMessage(err))
		}
		names = append(names, name)
		ps.skipSpace()
		if !ps.consume(',') {
			break
		}
	}
	if err := errors.ValidateGeneratorNames(names); err != nil {
		return nil, err
	}
	ps.setNames(names)

	p := New(names)
	ps.skipSpace()
	if ps.consume('|') {
		for {
			ps.skipSpace()
			if ps.peek() == '>' && len(p.Relations) == 0 {
				break
			}
			rel, err := ps.relation()
			if err != nil {
				return nil, err
			}
			p.AddRelation(rel)
			ps.skipSpace()
			if !ps.consume(',') {
				break
			}
		}
	}

	ps.skipSpace()
	if !ps.consume('>') {
		return nil, ps.errorf("expected '>'")
	}
	ps.skipSpace()
	if !ps.done() {
		return nil, ps.errorf("unexpected trailing input")
	}
	return p, nil
}

// ParseWord parses a single word (or equation) over the given generator
// names.
//
// The grammar is:
//
//	relation := word [ "=" word ]
//	word     := factor { ["*" | "."] factor }
//	factor   := atom [ "^" exponent ]
//	atom     := name | "1" | "(" word ")"
//	exponent := ["-" | "+"] digits | "(" ["-" | "+"] digits ")"
//
// Factors are separated by whitespace or an explicit "*" or ".". When every
// generator name is a single letter, an identifier that is not a name is
// read letter by letter, so "abab" means a b a b. "1" is the empty word.
func ParseWord(s string, names []string) (Word, error) {
	ps := &parser{input: s}
	ps.setNames(names)
	w, err := ps.relation()
	if err != nil {
		return nil, err
	}
	ps.skipSpace()
	if !ps.done() {
		return nil, ps.errorf("unexpected %q", ps.peek())
	}
	return w, nil
}

// ParseRelations builds a presentation from generator names and relations
// in text form, as found in structured presentation documents.
func ParseRelations(names []string, relations []string) (*Presentation, error) {
	if err := errors.ValidateGeneratorNames(names); err != nil {
		return nil, err
	}
	p := New(append([]string(nil), names...))
	for i, text := range relations {
		w, err := ParseWord(text, names)
		if err != nil {
			code := errors.ErrCodeInvalidFormat
			if errors.Is(err, errors.ErrCodeInvalidPresentation) {
				code = errors.ErrCodeInvalidPresentation
			}
			return nil, errors.Wrap(code, err, "relation %d", i)
		}
		p.AddRelation(w)
	}
	return p, nil
}

// MustParse is like [ParsePresentation] but panics on error. It is intended
// for tests and package-level variables.
func MustParse(s string) *Presentation {
	p, err := ParsePresentation(s)
	if err != nil {
		panic(err)
	}
	return p
}

type parser struct {
	input   string
	pos     int
	index   map[string]int
	letters bool // every generator name is a single letter
}

func (ps *parser) setNames(names []string) {
	ps.index = make(map[string]int, len(names))
	ps.letters = len(names) > 0
	for i, name := range names {
		ps.index[name] = i
		if utf8.RuneCountInString(name) != 1 {
			ps.letters = false
		}
	}
}

func (ps *parser) done() bool { return ps.pos >= len(ps.input) }

func (ps *parser) peek() byte {
	if ps.done() {
		return 0
	}
	return ps.input[ps.pos]
}

func (ps *parser) consume(c byte) bool {
	if ps.peek() == c && !ps.done() {
		ps.pos++
		return true
	}
	return false
}

func (ps *parser) skipSpace() {
	for !ps.done() {
		switch ps.input[ps.pos] {
		case ' ', '\t', '\n', '\r':
			ps.pos++
		default:
			return
		}
	}
}

func (ps *parser) errorf(msg string, args ...any) error {
	return ps.errorAt(ps.pos, msg, args...)
}

func (ps *parser) errorAt(pos int, msg string, args ...any) error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &errors.ParseError{Input: ps.input, Pos: pos, Message: msg}
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }

func (ps *parser) ident() (string, bool) {
	start := ps.pos
	if !isLetter(ps.peek()) {
		return "", false
	}
	for !ps.done() {
		c := ps.input[ps.pos]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			break
		}
		ps.pos++
	}
	return ps.input[start:ps.pos], true
}

func (ps *parser) relation() (Word, error) {
	lhs, err := ps.word()
	if err != nil {
		return nil, err
	}
	ps.skipSpace()
	if !ps.consume('=') {
		return lhs, nil
	}
	rhs, err := ps.word()
	if err != nil {
		return nil, err
	}
	out := lhs.Clone()
	for _, t := range rhs.Inverse() {
		out.AddTermLast(t)
	}
	if err := ps.checkExponents(out, ps.pos); err != nil {
		return nil, err
	}
	return out, nil
}

func (ps *parser) word() (Word, error) {
	var w Word
	for {
		ps.skipSpace()
		switch ps.peek() {
		case 0, ',', '>', ')', '=', '|':
			return w, nil
		case '*', '.':
			ps.pos++
			continue
		}
		f, err := ps.factor()
		if err != nil {
			return nil, err
		}
		for _, t := range f {
			w.AddTermLast(t)
		}
		if len(w) > maxWordTerms {
			return nil, ps.errorf("word too long")
		}
		if err := ps.checkExponents(w, ps.pos); err != nil {
			return nil, err
		}
	}
}

func (ps *parser) factor() (Word, error) {
	var prefix, atom Word
	start := ps.pos
	switch c := ps.peek(); {
	case c == '(':
		ps.pos++
		inner, err := ps.word()
		if err != nil {
			return nil, err
		}
		if !ps.consume(')') {
			return nil, ps.errorf("expected ')'")
		}
		atom = inner
	case c == '1':
		ps.pos++
	case isLetter(c):
		name, _ := ps.ident()
		w, ok := ps.lookup(name)
		if !ok {
			return nil, ps.errorAt(start, "unknown generator %q", name)
		}
		// In a letter run the exponent binds to the last letter only.
		prefix, atom = w[:len(w)-1], w[len(w)-1:]
	default:
		return nil, ps.errorf("unexpected %q", c)
	}

	ps.skipSpace()
	if ps.consume('^') {
		e, err := ps.exponent()
		if err != nil {
			return nil, err
		}
		if len(atom) > 1 && len(atom)*abs(e) > maxWordTerms {
			return nil, ps.errorAt(start, "word too long")
		}
		if len(atom) == 1 && abs(atom[0].Exp)*abs(e) > MaxExponent {
			return nil, ps.exponentError(start)
		}
		atom = atom.Pow(e)
		if err := ps.checkExponents(atom, start); err != nil {
			return nil, err
		}
	}
	return append(prefix, atom...), nil
}

func (ps *parser) lookup(name string) (Word, bool) {
	if g, ok := ps.index[name]; ok {
		return Word{{Gen: g, Exp: 1}}, true
	}
	if !ps.letters {
		return nil, false
	}
	w := make(Word, 0, len(name))
	for i := 0; i < len(name); i++ {
		g, ok := ps.index[name[i:i+1]]
		if !ok {
			return nil, false
		}
		w = append(w, Term{Gen: g, Exp: 1})
	}
	return w, true
}

func (ps *parser) exponent() (int, error) {
	ps.skipSpace()
	paren := ps.consume('(')
	ps.skipSpace()
	start := ps.pos
	if c := ps.peek(); c == '-' || c == '+' {
		ps.pos++
	}
	for isDigit(ps.peek()) {
		ps.pos++
	}
	e, err := strconv.Atoi(ps.input[start:ps.pos])
	if stderrors.Is(err, strconv.ErrRange) || e > MaxExponent || e < -MaxExponent {
		return 0, ps.exponentError(start)
	}
	if err != nil {
		return 0, ps.errorAt(start, "expected integer exponent")
	}
	if paren {
		ps.skipSpace()
		if !ps.consume(')') {
			return 0, ps.errorf("expected ')'")
		}
	}
	return e, nil
}

// checkExponents reports an exponent of w beyond MaxExponent, which can
// arise from merging adjacent powers.
func (ps *parser) checkExponents(w Word, pos int) error {
	if w.MaxExp() > MaxExponent {
		return ps.exponentError(pos)
	}
	return nil
}

func (ps *parser) exponentError(pos int) error {
	return errors.Wrap(errors.ErrCodeInvalidPresentation, ps.errorAt(pos, "exponent out of range"),
		"exponents must lie within ±%d", MaxExponent)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
