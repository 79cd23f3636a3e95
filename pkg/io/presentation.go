package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/covertower/pkg/errors"
	"github.com/matzehuels/covertower/pkg/group"
)

// Presentation formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// ValidFormats is the set of supported presentation formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatTOML: true,
	FormatYAML: true,
}

// ValidateFormat checks that format names a presentation format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: text, json, toml, yaml)", format)
	}
	return nil
}

// FormatFromPath picks the presentation format from a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// document is the structured form of a presentation.
type document struct {
	Name       string   `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Generators []string `json:"generators" toml:"generators" yaml:"generators"`
	Relations  []string `json:"relations" toml:"relations" yaml:"relations"`
}

// ReadPresentation decodes a presentation in the given format from r.
func ReadPresentation(r io.Reader, format string) (*group.Presentation, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if format == FormatText {
		p, err := group.ParsePresentation(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse presentation")
		}
		return p, nil
	}

	var doc document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &doc)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown key %q", undecoded[0].String())
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", format)
	}
	return doc.presentation()
}

func (d *document) presentation() (*group.Presentation, error) {
	if err := errors.ValidateGeneratorNames(d.Generators); err != nil {
		return nil, err
	}
	p, err := group.ParseRelations(d.Generators, d.Relations)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ImportPresentation reads a presentation file, choosing the format from
// its extension.
func ImportPresentation(path string) (*group.Presentation, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	p, err := ReadPresentation(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// WritePresentation encodes p in the given format. Generators without a
// name are written with their default names.
func WritePresentation(p *group.Presentation, w io.Writer, format string) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if format == FormatText {
		_, err := fmt.Fprintln(w, p.String())
		return err
	}

	names := p.GeneratorNames()
	doc := document{Generators: names, Relations: make([]string, len(p.Relations))}
	for i, r := range p.Relations {
		doc.Relations[i] = r.Format(names)
	}
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportPresentation writes p to path in the format implied by its
// extension.
func ExportPresentation(p *group.Presentation, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePresentation(p, f, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
