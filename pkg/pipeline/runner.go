package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/arrange/pkg/arrange"
	"github.com/matzehuels/arrange/pkg/arrange/overlap"
	"github.com/matzehuels/arrange/pkg/cache"
	"github.com/matzehuels/arrange/pkg/errors"
	"github.com/matzehuels/arrange/pkg/graph"
	"github.com/matzehuels/arrange/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// results. Multiple goroutines can use the same Runner on different graphs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArrangement,
	}
}

// Run executes the scheduled steps on g in order. g is modified in place by
// declutter, center and mirror. A cancelled context stops the run between
// steps and inside declutter; the error then carries the CANCELLED code.
func (r *Runner) Run(ctx context.Context, g *graph.Store, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	if opts.Has(StepReach) && !g.HasVertex(opts.Seed) {
		return nil, errors.New(errors.ErrCodeNotFound, "seed vertex %d does not exist", opts.Seed)
	}

	res := &Result{
		RunID: uuid.NewString(),
		Stats: Stats{
			VertexCount: g.VertexCount(),
			EdgeCount:   g.EdgeCount(),
			Durations:   make(map[string]time.Duration, len(opts.Steps)),
		},
	}
	logger := opts.Logger.With("run", res.RunID[:8])
	hooks := observability.Arrange()
	start := time.Now()

	for _, step := range opts.Steps {
		if err := ctx.Err(); err != nil {
			return nil, errors.Cancelled(err, "run cancelled before %s", step)
		}

		stepStart := time.Now()
		hooks.OnStepStart(ctx, res.RunID, step, g.VertexCount())
		err := r.runStep(ctx, g, step, opts, res)
		d := time.Since(stepStart)
		hooks.OnStepComplete(ctx, res.RunID, step, d, err)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step, err)
		}
		res.Stats.Durations[step] = d

		logger.Debug("step complete", "step", step, "duration", d)
	}

	res.Centroid = arrange.Centroid(g)
	res.Stats.Total = time.Since(start)
	logger.Info("arranged",
		"vertices", res.Stats.VertexCount,
		"edges", res.Stats.EdgeCount,
		"duration", res.Stats.Total)
	return res, nil
}

func (r *Runner) runStep(ctx context.Context, g *graph.Store, step string, opts Options, res *Result) error {
	switch step {
	case StepComponents:
		if len(opts.Vertices) > 0 {
			res.Taxonomy = arrange.ComponentsOf(g, opts.Vertices)
		} else {
			res.Taxonomy = arrange.Components(g)
		}
		opts.Logger.Debug("components",
			"taxa", res.Taxonomy.Len(),
			"singletons", len(res.Taxonomy.Singletons()),
			"doublets", len(res.Taxonomy.Doublets()))
	case StepReach:
		res.Distances = arrange.MinDistances(g, opts.Seed, opts.Forward, opts.Backward, opts.MinRadius)
	case StepDeclutter:
		ov, hit, err := r.Declutter(ctx, g, opts, res.RunID)
		if err != nil {
			return err
		}
		res.Overlap, res.CacheHit = ov, hit
	case StepCenter:
		target := arrange.Vec3{}
		if opts.Target != nil {
			target = *opts.Target
		}
		arrange.TranslateTo(g, target)
	case StepMirror:
		arrange.MirrorSecondary(g)
	}
	return nil
}

// =============================================================================
// Declutter
// =============================================================================

// arrangement is the cached form of a declutter result.
type arrangement struct {
	Positions []placed       `json:"positions"`
	Overlap   overlap.Result `json:"overlap"`
}

type placed struct {
	ID int     `json:"id"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
}

// Declutter resolves overlaps among the option's vertices (all vertices when
// empty), reusing cached positions for an identical snapshot unless
// opts.Refresh is set. It reports whether the cache was hit.
func (r *Runner) Declutter(ctx context.Context, g *graph.Store, opts Options, runID string) (overlap.Result, bool, error) {
	r.applyLogger(&opts)

	vertices := opts.Vertices
	if len(vertices) == 0 {
		vertices = make([]int, g.VertexCount())
		for pos := range vertices {
			vertices[pos] = g.Vertex(pos)
		}
	}
	for _, v := range vertices {
		if !g.HasVertex(v) {
			return overlap.Result{}, false, errors.New(errors.ErrCodeNotFound, "vertex %d does not exist", v)
		}
	}

	x := g.EnsureFloatAttribute(graph.Vertex, graph.AttrX)
	y := g.EnsureFloatAttribute(graph.Vertex, graph.AttrY)

	// Cache key covers the full snapshot, so any change to positions,
	// radii or topology misses.
	var key string
	if data, err := graph.Marshal(g); err == nil {
		key = r.Keyer.ArrangeKey(cache.Hash(data), opts.ArrangeKeyOpts())
	}

	if key != "" && !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "error", err)
		}
		if hit {
			var a arrangement
			if err := json.Unmarshal(data, &a); err == nil {
				for _, p := range a.Positions {
					if g.HasVertex(p.ID) {
						g.SetFloatValue(x, p.ID, p.X)
						g.SetFloatValue(y, p.ID, p.Y)
					}
				}
				opts.Logger.Debug("declutter cache hit", "key", key)
				return a.Overlap, true, nil
			}
			opts.Logger.Warn("discarding corrupt cache entry", "key", key)
		}
	}

	hooks := observability.Arrange()
	res, err := overlap.Resolve(ctx, g, vertices, overlap.Options{
		MinDistance: opts.MinDistance,
		OnPass: func(s overlap.PassStats) {
			hooks.OnOverlapPass(ctx, runID, s.Pass, s.Moves)
			if opts.OnPass != nil {
				opts.OnPass(s)
			}
		},
	})
	if err != nil {
		return res, false, err
	}
	opts.Logger.Debug("declutter", "passes", res.Passes, "moves", res.Moves, "shift", res.Shift)

	if key != "" {
		a := arrangement{Positions: make([]placed, len(vertices)), Overlap: res}
		for i, v := range vertices {
			a.Positions[i] = placed{ID: v, X: g.FloatValue(x, v), Y: g.FloatValue(y, v)}
		}
		if data, err := json.Marshal(a); err == nil {
			if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
				opts.Logger.Warn("cache write failed", "error", err)
			}
		}
	}
	return res, false, nil
}

// applyLogger falls back to the runner's logger when the options carry none.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger != nil {
		return
	}
	opts.Logger = r.Logger
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
