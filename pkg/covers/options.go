package covers

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures an enumeration.
type Option func(*config)

type config struct {
	logger *log.Logger
	stats  *Stats
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.stats == nil {
		c.stats = &Stats{}
	}
	return c
}

// WithLogger sets the logger used for debug output about the schedule and
// the finished search. By default nothing is logged.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

// WithStats makes the search record its counters into s. s is reset at the
// start of the search.
func WithStats(s *Stats) Option { return func(c *config) { c.stats = s } }

// Stats counts what a search did.
type Stats struct {
	Formulas          int // formulas in the schedule
	Nodes             int // representatives tried
	RelationRejects   int // branches cut by a relation
	MinimalityRejects int // branches cut by conjugacy-minimality
	Candidates        int // complete assignments reached
	NonTransitive     int // complete assignments that were not transitive
	Covers            int // covers delivered
}
