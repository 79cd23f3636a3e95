package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"slices"

	"github.com/matzehuels/covertower/pkg/covers"
	"github.com/matzehuels/covertower/pkg/errors"
)

// Output formats accepted by [Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// ValidFormats lists the output formats in the order they are documented.
var ValidFormats = []string{FormatDOT, FormatSVG, FormatPDF, FormatPNG}

// ValidateFormat reports an INVALID_FORMAT error for an unknown format.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown render format %q (valid: %v)", format, ValidFormats)
	}
	return nil
}

// Render draws c in the given format. PNG output uses a 2x scale.
func Render(ctx context.Context, c *covers.Cover, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == FormatDOT {
		return []byte(ToDOT(c, opts)), nil
	}
	svg, err := SVG(ctx, c, opts)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatPDF:
		return ToPDF(svg)
	case FormatPNG:
		return ToPNG(svg, 2.0)
	}
	return svg, nil
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
