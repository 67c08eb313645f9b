// Package dmp implements the diff-match-patch family of algorithms: a
// Myers bidirectional diff engine with semantic and efficiency cleanup
// passes, a bitap fuzzy matcher, and a patch engine that can locate and
// apply hunks against drifted text.
package dmp

import (
	"time"
)

// Config is the configuration for diff, match, and patch operations. A
// Config is cheap to construct and safe for concurrent use as long as
// its fields are not mutated while an operation is in flight.
type Config struct {
	// DiffTimeout is the wall-clock budget for a single top-level Diff
	// call (0 disables the bound and also disables half-match, see
	// DiffHalfMatch).
	DiffTimeout time.Duration
	// Cost of an empty edit operation in terms of edit characters.
	DiffEditCost int

	// How far to search for a match (0 = exact location, 1000+ = broad
	// match). A match this many characters away from the expected
	// location will add 1.0 to the score (0.0 is a perfect match).
	MatchDistance int
	// The number of bits in an int; also bounds how large a hunk
	// pattern PatchSplitMax will allow before splitting it.
	MatchMaxBits int
	// At what point is no match declared (0.0 = perfection, 1.0 = very
	// loose).
	MatchThreshold float64

	// When deleting a large block of text (over MatchMaxBits bytes), how
	// close do the contents have to be to match the expected contents.
	// (0.0 = perfection, 1.0 = very loose). Note that MatchThreshold
	// controls how closely the end points of a delete need to match.
	PatchDeleteThreshold float64
	// Chunk size for context length.
	PatchMargin int
}

// NewDefaultConfig creates a new configuration with the canonical
// diff-match-patch default parameters.
func NewDefaultConfig() *Config {
	return &Config{
		DiffTimeout:          time.Second,
		DiffEditCost:         4,
		MatchThreshold:       0.5,
		MatchDistance:        1000,
		MatchMaxBits:         32,
		PatchDeleteThreshold: 0.5,
		PatchMargin:          4,
	}
}

// Option adjusts a Config produced by NewConfig away from its defaults.
type Option func(*Config)

// NewConfig builds a Config starting from the canonical defaults and
// applying opts in order.
func NewConfig(opts ...Option) *Config {
	config := NewDefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// WithDiffTimeout sets the wall-clock budget for Diff.
func WithDiffTimeout(d time.Duration) Option {
	return func(c *Config) { c.DiffTimeout = d }
}

// WithDiffEditCost sets the efficiency-cleanup edit cost threshold.
func WithDiffEditCost(cost int) Option {
	return func(c *Config) { c.DiffEditCost = cost }
}

// WithMatchDistance sets the bitap proximity weighting distance.
func WithMatchDistance(distance int) Option {
	return func(c *Config) { c.MatchDistance = distance }
}

// WithMatchThreshold sets the bitap score threshold.
func WithMatchThreshold(threshold float64) Option {
	return func(c *Config) { c.MatchThreshold = threshold }
}

// WithMatchMaxBits sets the maximum pattern length bitap can handle.
func WithMatchMaxBits(bits int) Option {
	return func(c *Config) { c.MatchMaxBits = bits }
}

// WithPatchDeleteThreshold sets how closely a large deletion's content
// must match the original before PatchApply accepts it.
func WithPatchDeleteThreshold(threshold float64) Option {
	return func(c *Config) { c.PatchDeleteThreshold = threshold }
}

// WithPatchMargin sets the context length kept around each hunk.
func WithPatchMargin(margin int) Option {
	return func(c *Config) { c.PatchMargin = margin }
}
