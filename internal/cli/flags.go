package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/pkg/arrange"
	"github.com/matzehuels/arrange/pkg/errors"
	"github.com/matzehuels/arrange/pkg/graph"
	"github.com/matzehuels/arrange/pkg/pipeline"
)

// =============================================================================
// Option Flags
// =============================================================================

// optionFlags collects the flags shared by the arrangement commands. Values
// only override the config when the flag was given explicitly.
type optionFlags struct {
	vertices    []int
	seed        int
	forward     bool
	backward    bool
	minRadius   float64
	minDistance float64
	refresh     bool
	noCache     bool
	x, y, z     float64
}

func (f *optionFlags) addSubset(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&f.vertices, "vertices", nil, "restrict to these vertex ids (comma-separated)")
}

func (f *optionFlags) addReach(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.seed, "seed", pipeline.NoSeed, "seed vertex id")
	cmd.Flags().BoolVar(&f.forward, "forward", true, "follow outgoing edges")
	cmd.Flags().BoolVar(&f.backward, "backward", false, "follow incoming edges (weighted 1.5x)")
	cmd.Flags().Float64Var(&f.minRadius, "min-radius", float64(arrange.DefaultRadius), "lower bound for a vertex's radius")
}

func (f *optionFlags) addDeclutter(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.minDistance, "min-distance", 1e-6, "distance below which two centres count as coincident")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached positions")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

func (f *optionFlags) addCenter(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.x, "x", 0, "target centroid x")
	cmd.Flags().Float64Var(&f.y, "y", 0, "target centroid y")
	cmd.Flags().Float64Var(&f.z, "z", 0, "target centroid z")
}

// options merges config defaults and explicitly set flags.
func (c *CLI) options(cmd *cobra.Command, f *optionFlags, steps ...string) pipeline.Options {
	opts := pipeline.FromConfig(c.Config)
	opts.Steps = steps
	opts.Logger = c.Logger
	opts.Vertices = f.vertices
	opts.Refresh = f.refresh

	fl := cmd.Flags()
	if fl.Changed("seed") {
		opts.Seed = f.seed
	}
	if fl.Changed("forward") {
		opts.Forward = f.forward
	}
	if fl.Changed("backward") {
		opts.Backward = f.backward
	}
	if fl.Changed("min-radius") {
		opts.MinRadius = float32(f.minRadius)
	}
	if fl.Changed("min-distance") {
		opts.MinDistance = f.minDistance
	}
	if fl.Changed("x") || fl.Changed("y") || fl.Changed("z") {
		opts.Target = &arrange.Vec3{X: float32(f.x), Y: float32(f.y), Z: float32(f.z)}
	}
	return opts
}

// =============================================================================
// Graph Files
// =============================================================================

// loadGraph reads a graph snapshot, mapping failures to coded errors.
func loadGraph(path string) (*graph.Store, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s not found", path)
	}
	g, err := graph.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "load graph %s", path)
	}
	return g, nil
}

// defaultOutput derives "<name>.arranged.json" from the input path.
func defaultOutput(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ".arranged.json"
}

// saveGraph writes g to output, or to stdout when output is "-". The file
// line goes to status.
func saveGraph(cmd *cobra.Command, g graph.Reader, output string, status io.Writer) error {
	if output == "-" {
		return graph.Write(g, cmd.OutOrStdout())
	}
	if err := errors.ValidatePath(output); err != nil {
		return err
	}
	if err := graph.WriteFile(g, output); err != nil {
		return err
	}
	printFile(status, output)
	return nil
}

// statusWriter is where human-readable status goes: stdout normally, stderr
// when stdout carries the graph itself.
func statusWriter(cmd *cobra.Command, output string) io.Writer {
	if output == "-" {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}
