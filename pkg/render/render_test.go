package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/covertower/pkg/covers"
	"github.com/matzehuels/covertower/pkg/errors"
	"github.com/matzehuels/covertower/pkg/group"
)

func firstCover(t *testing.T, p *group.Presentation, degree int) *covers.Cover {
	t.Helper()
	for c, err := range covers.All(p, degree) {
		if err != nil {
			t.Fatal(err)
		}
		return c
	}
	t.Fatalf("no cover of %v at degree %d", p, degree)
	return nil
}

func TestToDOTCycle(t *testing.T) {
	c := firstCover(t, group.Free(1), 3)
	want := `digraph G {
  layout=circo;
  bgcolor="transparent";
  node [shape=circle, style=filled, fillcolor=white, fontsize=18];
  edge [arrowsize=0.7];

  s0 [label="0", shape=doublecircle];
  s1 [label="1"];
  s2 [label="2"];

  s0 -> s1 [color="#1f77b4", penwidth=3];
  s1 -> s2 [color="#1f77b4", penwidth=3];
  s2 -> s0 [color="#1f77b4"];
}
`
	if got := ToDOT(c, Options{Tree: true}); got != want {
		t.Errorf("ToDOT() =\n%s\nwant\n%s", got, want)
	}
}

func TestToDOTOptions(t *testing.T) {
	c := firstCover(t, group.MustParse("<a, b | a^2, b^3, (a b)^2>"), 3)

	plain := ToDOT(c, Options{})
	if strings.Contains(plain, "penwidth") {
		t.Error("tree edges should only be bold with Options.Tree")
	}
	if !strings.Contains(plain, `s0 -> s0 [color="#1f77b4"]`) {
		t.Errorf("missing fixed-point loop of a:\n%s", plain)
	}
	if n := strings.Count(plain, "->"); n != 6 {
		t.Errorf("got %d edges, want 6", n)
	}

	hidden := ToDOT(c, Options{HideFixed: true})
	if strings.Contains(hidden, "s0 -> s0") {
		t.Error("HideFixed should drop loops")
	}

	labelled := ToDOT(c, Options{Labels: true, Tree: true})
	for _, want := range []string{
		`s0 -> s1 [color="#d62728", label="b", fontcolor="#d62728", penwidth=3]`,
		`s1 -> s2 [color="#1f77b4", label="a", fontcolor="#1f77b4", penwidth=3]`,
	} {
		if !strings.Contains(labelled, want) {
			t.Errorf("missing %s in:\n%s", want, labelled)
		}
	}
}

func TestEdgeColorCycles(t *testing.T) {
	if EdgeColor(0) != EdgeColor(len(palette)) {
		t.Error("palette should wrap around")
	}
	if EdgeColor(0) == EdgeColor(1) {
		t.Error("adjacent generators should differ in colour")
	}
}

func TestRenderDOT(t *testing.T) {
	c := firstCover(t, group.Free(2), 2)
	data, err := Render(context.Background(), c, FormatDOT, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != ToDOT(c, Options{}) {
		t.Error("Render(dot) should return ToDOT output")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	c := firstCover(t, group.Free(1), 2)
	_, err := Render(context.Background(), c, "gif", Options{})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestSVG(t *testing.T) {
	c := firstCover(t, group.MustParse("<a, b | a^2, b^3, (a b)^2>"), 3)
	svg, err := SVG(context.Background(), c, Options{Tree: true, Labels: true})
	if err != nil {
		t.Fatal(err)
	}
	out := string(svg)
	if !strings.Contains(out, `viewBox="0 0 `) {
		t.Errorf("svg not normalized:\n%s", out)
	}
	if title := "<title>" + coverTitle(c) + "</title>"; !strings.Contains(out, title) {
		t.Errorf("svg lacks %s:\n%s", title, out)
	}

	data, err := Render(context.Background(), c, FormatSVG, Options{Tree: true, Labels: true})
	if err != nil || !bytes.Equal(data, svg) {
		t.Errorf("Render(svg) differs from SVG (err %v)", err)
	}
}

func TestDOTToSVGParseError(t *testing.T) {
	if _, err := dotToSVG(context.Background(), "digraph G { s0 -> "); err == nil {
		t.Error("expected a parse error")
	}
}

func TestCoverTitle(t *testing.T) {
	c := firstCover(t, group.Free(1), 3)
	if got, want := coverTitle(c), "g0 = "+c.FormatRep(0); got != want {
		t.Errorf("coverTitle = %q, want %q", got, want)
	}
}

func TestFinishSVG(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		title string
		want  string
	}{
		{
			name:  "graphviz root",
			in:    "<?xml version=\"1.0\"?>\n" + `<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="x"><g/></svg>`,
			title: "a = (0 1) & b",
			want:  "<?xml version=\"1.0\"?>\n" + `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 62.00 116.00" width="62" height="116"><title>a = (0 1) &amp; b</title><g/></svg>`,
		},
		{
			name: "degenerate viewBox",
			in:   `<svg viewBox="0 0 0 10"></svg>`,
			want: `<svg viewBox="0 0 0 10"></svg>`,
		},
		{
			name:  "no viewBox",
			in:    `<svg width="10"><g/></svg>`,
			title: "t",
			want:  `<svg width="10"><title>t</title><g/></svg>`,
		},
		{
			name: "no root",
			in:   `<g/>`,
			want: `<g/>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(finishSVG([]byte(tt.in), tt.title)); got != tt.want {
				t.Errorf("finishSVG() = %s, want %s", got, tt.want)
			}
		})
	}
}
