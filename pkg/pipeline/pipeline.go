// Package pipeline runs arrangement steps over a graph snapshot.
//
// The CLI and any embedding service share this package so that step order,
// defaults, caching and instrumentation behave the same everywhere.
//
// # Steps
//
//  1. components: partition the vertices into taxa
//  2. reach: weighted distances from a seed vertex
//  3. declutter: remove overlaps between vertex disks (cached)
//  4. center: translate the centroid to a target
//  5. mirror: copy primary positions into the secondary position
//
// Steps run in the order given in [Options.Steps].
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Run(ctx, g, pipeline.Options{
//	    Steps: []string{pipeline.StepDeclutter, pipeline.StepCenter},
//	})
//	if err != nil {
//	    return err
//	}
//	logger.Info("done", "run", res.RunID, "moves", res.Overlap.Moves)
package pipeline

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arrange/pkg/arrange"
	"github.com/matzehuels/arrange/pkg/arrange/overlap"
	"github.com/matzehuels/arrange/pkg/cache"
	"github.com/matzehuels/arrange/pkg/config"
	"github.com/matzehuels/arrange/pkg/errors"
)

// =============================================================================
// Steps
// =============================================================================

// Step names.
const (
	StepComponents = "components"
	StepReach      = "reach"
	StepDeclutter  = "declutter"
	StepCenter     = "center"
	StepMirror     = "mirror"
)

// ValidSteps is the set of supported steps.
var ValidSteps = map[string]bool{
	StepComponents: true,
	StepReach:      true,
	StepDeclutter:  true,
	StepCenter:     true,
	StepMirror:     true,
}

// DefaultSteps is used when Options.Steps is empty.
var DefaultSteps = []string{StepComponents, StepDeclutter, StepCenter}

// NoSeed marks Options.Seed as unset.
const NoSeed = -1

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	Steps []string `json:"steps,omitempty"`

	// Vertices restricts components and declutter to a subset. Empty means
	// every vertex.
	Vertices []int `json:"vertices,omitempty"`

	// Reach options
	Seed     int  `json:"seed"`
	Forward  bool `json:"forward,omitempty"`
	Backward bool `json:"backward,omitempty"`

	// MinRadius is a lower bound on each vertex's radius. Zero uses label
	// radii as they are.
	MinRadius float32 `json:"min_radius"`

	// Declutter options
	MinDistance float64 `json:"min_distance,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"` // bypass cached positions

	// Center options. A nil target centres on the origin.
	Target *arrange.Vec3 `json:"target,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger             `json:"-"` // overrides the runner's logger
	OnPass func(overlap.PassStats) `json:"-"` // declutter progress
}

// FromConfig returns options seeded with the configured defaults.
func FromConfig(cfg config.Config) Options {
	return Options{
		Seed:        NoSeed,
		Forward:     cfg.Reach.Forward,
		Backward:    cfg.Reach.Backward,
		MinRadius:   float32(cfg.Reach.MinRadius),
		MinDistance: cfg.Overlap.MinDistance,
	}
}

// Validate checks the options and applies defaults.
func (o *Options) Validate() error {
	if len(o.Steps) == 0 {
		o.Steps = slices.Clone(DefaultSteps)
	}
	for _, s := range o.Steps {
		if !ValidSteps[s] {
			return errors.New(errors.ErrCodeInvalidInput,
				"invalid step: %q (must be one of: components, reach, declutter, center, mirror)", s)
		}
	}
	if o.Has(StepReach) && o.Seed < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "reach step requires a seed vertex")
	}
	if err := errors.ValidateRadius("min_radius", float64(o.MinRadius)); err != nil {
		return err
	}
	if err := errors.ValidateRadius("min_distance", o.MinDistance); err != nil {
		return err
	}
	if o.MinDistance == 0 {
		o.MinDistance = overlap.DefaultMinDistance
	}
	return nil
}

// Has reports whether step is scheduled.
func (o *Options) Has(step string) bool {
	return slices.Contains(o.Steps, step)
}

// ArrangeKeyOpts returns cache key options for the declutter step.
func (o *Options) ArrangeKeyOpts() cache.ArrangeKeyOpts {
	return cache.ArrangeKeyOpts{
		Step:        StepDeclutter,
		MinDistance: o.MinDistance,
		Subset:      cache.HashIDs(o.Vertices),
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run. Fields belonging to steps
// that did not run are left zero.
type Result struct {
	// RunID correlates log lines and hook events of one run.
	RunID string `json:"run_id"`

	Taxonomy  *arrange.Taxonomy `json:"-"`
	Distances []float32         `json:"distances,omitempty"`
	Overlap   overlap.Result    `json:"overlap"`

	// Centroid is the primary centroid after the last step.
	Centroid arrange.Vec3 `json:"centroid"`

	// CacheHit reports whether declutter positions came from the cache.
	CacheHit bool `json:"cache_hit"`

	Stats Stats `json:"stats"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int                      `json:"vertex_count"`
	EdgeCount   int                      `json:"edge_count"`
	Durations   map[string]time.Duration `json:"durations"`
	Total       time.Duration            `json:"total"`
}
