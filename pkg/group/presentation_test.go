package group

import (
	"testing"

	"github.com/matzehuels/covertower/pkg/errors"
)

func TestPresentationValidate(t *testing.T) {
	tests := []struct {
		name string
		p    *Presentation
		code errors.Code
	}{
		{"ok", New([]string{"a", "b"}, NewWord(0, 2, 1, -1)), ""},
		{"free", Free(3), ""},
		{"out of range", &Presentation{NumGenerators: 1, Relations: []Word{{{1, 1}}}}, errors.ErrCodeInvalidPresentation},
		{"negative generator", &Presentation{NumGenerators: 1, Relations: []Word{{{-1, 1}}}}, errors.ErrCodeInvalidPresentation},
		{"zero exponent", &Presentation{NumGenerators: 1, Relations: []Word{{{0, 0}}}}, errors.ErrCodeInvalidPresentation},
		{"largest exponent", &Presentation{NumGenerators: 1, Relations: []Word{{{0, -MaxExponent}}}}, ""},
		{"exponent too large", &Presentation{NumGenerators: 1, Relations: []Word{{{0, MaxExponent + 1}}}}, errors.ErrCodeInvalidPresentation},
		{"exponent near int limit", &Presentation{NumGenerators: 1, Relations: []Word{{{0, 1 << 62}}}}, errors.ErrCodeInvalidPresentation},
		{"name count", &Presentation{NumGenerators: 2, Names: []string{"a"}}, errors.ErrCodeInvalidPresentation},
		{"bad name", New([]string{"1a"}), errors.ErrCodeInvalidGenerator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestPresentationClone(t *testing.T) {
	p := MustParse("<a, b | a^2, a b a^-1 b^-1>")
	q := p.Clone()
	q.Relations[0][0].Exp = 7
	q.Names[0] = "z"
	if p.Relations[0][0].Exp != 2 || p.Names[0] != "a" {
		t.Error("Clone shares storage with the original")
	}
}

func TestIncidence(t *testing.T) {
	p := MustParse("<a, b, c | a^2, b c, a c a>")
	want := [][]bool{
		{true, false, false},
		{false, true, true},
		{true, false, true},
	}
	got := p.Incidence()
	for r := range want {
		for g := range want[r] {
			if got[r][g] != want[r][g] {
				t.Errorf("Incidence[%d][%d] = %v, want %v", r, g, got[r][g], want[r][g])
			}
		}
	}
}

func TestNamesAndString(t *testing.T) {
	p := Free(2)
	p.AddRelation(NewWord(0, 1, 1, 1))
	if got := p.String(); got != "<g0, g1 | g0 g1>" {
		t.Errorf("String = %q", got)
	}
	if got := p.Name(5); got != "g5" {
		t.Errorf("Name(5) = %q", got)
	}
	if got := MustParse("<a | a^3>").String(); got != "<a | a^3>" {
		t.Errorf("String = %q", got)
	}
	if got := Free(1).String(); got != "<g0 |>" {
		t.Errorf("String = %q", got)
	}
}

func TestTotalLength(t *testing.T) {
	p := MustParse("<a, b | a^2, b^-3, (a b)^2>")
	if got := p.TotalLength(); got != 9 {
		t.Errorf("TotalLength = %d, want 9", got)
	}
}
