package render

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/matzehuels/covertower/pkg/covers"
)

// SVG draws the Schreier graph of c as a standalone SVG document. The root
// element is sized by a viewBox at the origin and carries a title listing
// the permutation of every generator.
func SVG(ctx context.Context, c *covers.Cover, opts Options) ([]byte, error) {
	svg, err := dotToSVG(ctx, ToDOT(c, opts))
	if err != nil {
		return nil, err
	}
	return finishSVG(svg, coverTitle(c)), nil
}

func dotToSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// coverTitle lists the representatives, as in "a = (0 1), b = (0 1 2)".
func coverTitle(c *covers.Cover) string {
	p := c.Presentation()
	parts := make([]string, len(c.Reps))
	for g := range c.Reps {
		parts[g] = p.Name(g) + " = " + c.FormatRep(g)
	}
	return strings.Join(parts, ", ")
}

var (
	svgRootRe = regexp.MustCompile(`<svg\b[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([^"]*)"`)
)

// finishSVG replaces the point-sized root element Graphviz writes with one
// whose viewBox starts at the origin, and inserts title as its first child.
// A root without a usable viewBox is kept as is.
func finishSVG(svg []byte, title string) []byte {
	loc := svgRootRe.FindIndex(svg)
	if loc == nil {
		return svg
	}
	root := svg[loc[0]:loc[1]]

	var b bytes.Buffer
	b.Write(svg[:loc[0]])
	if w, h, ok := viewBoxSize(root); ok {
		fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
			w, h, w, h)
	} else {
		b.Write(root)
	}
	if title != "" {
		b.WriteString("<title>")
		xml.EscapeText(&b, []byte(title))
		b.WriteString("</title>")
	}
	b.Write(svg[loc[1]:])
	return b.Bytes()
}

// viewBoxSize returns the width and height of the viewBox attribute of an
// svg start tag. Both must be positive.
func viewBoxSize(root []byte) (w, h float64, ok bool) {
	m := viewBoxRe.FindSubmatch(root)
	if m == nil {
		return 0, 0, false
	}
	fields := strings.Fields(string(m[1]))
	if len(fields) != 4 {
		return 0, 0, false
	}
	w, errW := strconv.ParseFloat(fields[2], 64)
	h, errH := strconv.ParseFloat(fields[3], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
