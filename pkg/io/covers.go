package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/covertower/pkg/covers"
	"github.com/matzehuels/covertower/pkg/group"
)

// CoverExport is the JSON document describing one enumeration run.
type CoverExport struct {
	RunID        string        `json:"run_id"`
	CreatedAt    time.Time     `json:"created_at"`
	Presentation string        `json:"presentation"`
	Generators   []string      `json:"generators"`
	Degree       int           `json:"degree"`
	Count        int           `json:"count"`
	Truncated    bool          `json:"truncated,omitempty"`
	Covers       []CoverRecord `json:"covers"`
}

// CoverRecord describes one cover.
type CoverRecord struct {
	Index      int                 `json:"index"`
	Reps       []RepRecord         `json:"reps"`
	Tree       []EdgeRecord        `json:"tree"`
	Subgroup   string              `json:"subgroup"`
	Generators []SubgroupGenRecord `json:"subgroup_generators"`
	Relations  int                 `json:"subgroup_relations"`
}

// RepRecord is the permutation assigned to one generator.
type RepRecord struct {
	Generator string `json:"generator"`
	Cycles    string `json:"cycles"`
	Images    []int  `json:"images"`
}

// EdgeRecord is a (generator, sheet) edge of the cover.
type EdgeRecord struct {
	Generator string `json:"generator"`
	Sheet     int    `json:"sheet"`
}

// SubgroupGenRecord names a subgroup generator, the edge it came from, and
// the word of the parent group it stands for.
type SubgroupGenRecord struct {
	Name      string `json:"name"`
	Generator string `json:"generator"`
	Sheet     int    `json:"sheet"`
	Word      string `json:"word"`
}

// NewExport builds the export document for the covers of p found at
// degree. Each call gets a fresh run ID.
func NewExport(p *group.Presentation, degree int, found []*covers.Cover) *CoverExport {
	out := &CoverExport{
		RunID:        uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Presentation: p.String(),
		Generators:   p.GeneratorNames(),
		Degree:       degree,
		Count:        len(found),
		Covers:       make([]CoverRecord, len(found)),
	}
	for i, c := range found {
		out.Covers[i] = NewCoverRecord(i, c)
	}
	return out
}

// NewCoverRecord describes c.
func NewCoverRecord(index int, c *covers.Cover) CoverRecord {
	p := c.Presentation()
	names := p.GeneratorNames()
	rec := CoverRecord{
		Index:      index,
		Reps:       make([]RepRecord, len(c.Reps)),
		Tree:       make([]EdgeRecord, len(c.Tree)),
		Subgroup:   c.Subgroup.String(),
		Generators: make([]SubgroupGenRecord, len(c.Generators)),
		Relations:  len(c.Subgroup.Relations),
	}
	for g := range c.Reps {
		rec.Reps[g] = RepRecord{Generator: names[g], Cycles: c.FormatRep(g), Images: c.Images(g)}
	}
	for i, e := range c.Tree {
		rec.Tree[i] = EdgeRecord{Generator: names[e.Gen], Sheet: e.Sheet}
	}
	for k, e := range c.Generators {
		rec.Generators[k] = SubgroupGenRecord{
			Name:      c.Subgroup.Name(k),
			Generator: names[e.Gen],
			Sheet:     e.Sheet,
			Word:      c.Schreier(k).Format(names),
		}
	}
	return rec
}

// WriteCovers encodes e as indented JSON.
func WriteCovers(e *CoverExport, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadCovers decodes an export written by [WriteCovers].
func ReadCovers(r io.Reader) (*CoverExport, error) {
	var e CoverExport
	if err := json.NewDecoder(r).Decode(&e); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if e.Count != len(e.Covers) && !e.Truncated {
		return nil, fmt.Errorf("decode: count %d does not match %d covers", e.Count, len(e.Covers))
	}
	return &e, nil
}

// ExportCovers writes e to a JSON file at path.
func ExportCovers(e *CoverExport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCovers(e, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
