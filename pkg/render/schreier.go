package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/covertower/pkg/covers"
)

// Options configures Schreier graph rendering.
type Options struct {
	// Tree draws the spanning tree edges bold.
	Tree bool

	// Labels writes the generator name on every edge. Colours alone
	// distinguish generators when false.
	Labels bool

	// HideFixed omits the loops of sheets a generator fixes.
	HideFixed bool
}

// palette holds the edge colours, cycled by generator index.
var palette = []string{
	"#1f77b4", "#d62728", "#2ca02c", "#ff7f0e",
	"#9467bd", "#8c564b", "#e377c2", "#17becf",
}

// EdgeColor returns the colour used for generator g.
func EdgeColor(g int) string { return palette[g%len(palette)] }

// ToDOT converts a cover's Schreier graph to Graphviz DOT format.
// [SVG] renders the same graph through Graphviz.
func ToDOT(c *covers.Cover, opts Options) string {
	p := c.Presentation()
	inTree := make(map[covers.Edge]bool, len(c.Tree))
	if opts.Tree {
		for _, e := range c.Tree {
			inTree[e] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=18];\n")
	buf.WriteString("  edge [arrowsize=0.7];\n")
	buf.WriteString("\n")

	for s := range c.Degree {
		attrs := []string{fmt.Sprintf("label=%q", fmt.Sprint(s))}
		if s == 0 {
			attrs = append(attrs, "shape=doublecircle")
		}
		fmt.Fprintf(&buf, "  s%d [%s];\n", s, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for g := range c.Reps {
		images := c.Images(g)
		for s, to := range images {
			if to == s && opts.HideFixed {
				continue
			}
			attrs := []string{fmt.Sprintf("color=%q", EdgeColor(g))}
			if opts.Labels {
				attrs = append(attrs, fmt.Sprintf("label=%q", p.Name(g)), fmt.Sprintf("fontcolor=%q", EdgeColor(g)))
			}
			if inTree[covers.Edge{Gen: g, Sheet: s}] {
				attrs = append(attrs, "penwidth=3")
			}
			fmt.Fprintf(&buf, "  s%d -> s%d [%s];\n", s, to, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}
