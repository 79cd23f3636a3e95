package pipeline

import (
	"github.com/matzehuels/covertower/pkg/covers"
	"github.com/matzehuels/covertower/pkg/errors"
	"github.com/matzehuels/covertower/pkg/group"
	cio "github.com/matzehuels/covertower/pkg/io"
)

// LoadPresentation parses opts.Presentation or, when it is empty, reads the
// presentation file at opts.Path. The format of a file follows its
// extension.
func LoadPresentation(opts Options) (*group.Presentation, error) {
	if opts.Presentation != "" {
		return group.ParsePresentation(opts.Presentation)
	}
	if err := errors.ValidatePath(opts.Path); err != nil {
		return nil, err
	}
	return cio.ImportPresentation(opts.Path)
}

// Search runs the cover search for p at opts.Degree. With a positive
// opts.Limit it stops after that many covers and reports whether more
// exist.
func Search(p *group.Presentation, opts Options) (found []*covers.Cover, truncated bool, stats covers.Stats, err error) {
	for c, err := range covers.All(p, opts.Degree, covers.WithLogger(opts.Logger), covers.WithStats(&stats)) {
		if err != nil {
			return nil, false, stats, err
		}
		if opts.Limit > 0 && len(found) == opts.Limit {
			truncated = true
			break
		}
		found = append(found, c)
	}
	return found, truncated, stats, nil
}

// rebuildCovers recreates the covers described by an export.
func rebuildCovers(p *group.Presentation, e *cio.CoverExport) ([]*covers.Cover, error) {
	out := make([]*covers.Cover, len(e.Covers))
	for i, rec := range e.Covers {
		images := make([][]int, len(rec.Reps))
		for g, r := range rec.Reps {
			images[g] = r.Images
		}
		c, err := covers.NewCover(p, images)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "rebuild cover %d", i)
		}
		out[i] = c
	}
	return out, nil
}
