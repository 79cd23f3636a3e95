// Package pipeline provides the enumeration pipeline shared by the CLI and
// the HTTP API.
//
// The pipeline loads a presentation, enumerates its covers at one or more
// degrees, and renders individual covers. Results and renderings are cached,
// so repeated requests for the same presentation and degree are answered
// without searching again.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse a presentation from text or read it from a file
//  2. Enumerate: Run the cover search and build the export document
//  3. Render: Draw one cover as DOT, SVG, PDF or PNG
//
// # Usage
//
// Create a Runner and enumerate:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Enumerate(ctx, pipeline.Options{
//	    Presentation: "<a, b | a^2, b^3, (a b)^2>",
//	    Degree:       3,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg, err := runner.Render(ctx, res, pipeline.Options{Format: "svg"})
//
// Several degrees run concurrently with [Runner.EnumerateRange].
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/covertower/pkg/cache"
	"github.com/matzehuels/covertower/pkg/covers"
	"github.com/matzehuels/covertower/pkg/errors"
	"github.com/matzehuels/covertower/pkg/group"
	cio "github.com/matzehuels/covertower/pkg/io"
	"github.com/matzehuels/covertower/pkg/perm"
	"github.com/matzehuels/covertower/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultDegree is the degree enumerated when none is given.
	DefaultDegree = 2

	// DefaultMaxDegree is the largest degree the search supports.
	DefaultMaxDegree = perm.MaxDegree

	// DefaultCacheTTL is how long enumeration results are kept.
	DefaultCacheTTL = cache.TTLCovers

	// DefaultFormat is the default render format.
	DefaultFormat = render.FormatSVG
)

// exportVersion is part of the covers cache key. Bump it when the layout of
// [cio.CoverExport] changes.
const exportVersion = "v1"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Presentation string `json:"presentation,omitempty"` // text form, e.g. "<a, b | a^2>"
	Path         string `json:"-"`                      // presentation file, used when Presentation is empty

	// Enumerate options
	Degree  int  `json:"degree,omitempty"`
	Limit   int  `json:"limit,omitempty"` // stop after this many covers (0 = all)
	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Format    string `json:"format,omitempty"`
	Cover     int    `json:"cover,omitempty"` // index into the result's covers
	Tree      bool   `json:"tree,omitempty"`
	Labels    bool   `json:"labels,omitempty"`
	HideFixed bool   `json:"hide_fixed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of one enumeration.
type Result struct {
	// Presentation is the loaded presentation.
	Presentation *group.Presentation

	// Hash is the content hash of the presentation's text form.
	Hash string

	// Export is the serializable description of the run.
	Export *cio.CoverExport

	// Covers holds the covers in delivery order. On a cache hit they are
	// rebuilt from the export.
	Covers []*covers.Cover

	// Stats contains timing and search statistics.
	Stats Stats

	// CacheHit reports whether the result came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Duration time.Duration
	Search   covers.Stats // zero on a cache hit
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateDegree checks that degree is supported by the search.
func ValidateDegree(degree int) error {
	return errors.ValidateDegree(degree, DefaultMaxDegree)
}

// ValidateLimit checks that a cover limit is not negative.
func ValidateLimit(limit int) error {
	if limit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "limit must not be negative, got %d", limit)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// enumeration. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Presentation == "" && o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "presentation or path is required")
	}
	if o.Degree == 0 {
		o.Degree = DefaultDegree
	}
	if err := ValidateDegree(o.Degree); err != nil {
		return err
	}
	if err := ValidateLimit(o.Limit); err != nil {
		return err
	}
	o.SetRenderDefaults()
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Cover < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cover index must not be negative, got %d", o.Cover)
	}
	return render.ValidateFormat(o.Format)
}

// CoversKeyOpts returns cache key options for enumeration.
func (o *Options) CoversKeyOpts() cache.CoversKeyOpts {
	return cache.CoversKeyOpts{
		Degree: o.Degree,
		Limit:  o.Limit,
		Format: exportVersion,
	}
}

// ArtifactKeyOpts returns cache key options for rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    o.Format,
		Tree:      o.Tree,
		Labels:    o.Labels,
		HideFixed: o.HideFixed,
	}
}

// RenderOptions returns the drawing options for [render.Render].
func (o *Options) RenderOptions() render.Options {
	return render.Options{Tree: o.Tree, Labels: o.Labels, HideFixed: o.HideFixed}
}
