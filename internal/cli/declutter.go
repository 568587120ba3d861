package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/pkg/arrange/overlap"
	"github.com/matzehuels/arrange/pkg/errors"
	"github.com/matzehuels/arrange/pkg/pipeline"
)

func (c *CLI) declutterCommand() *cobra.Command {
	var (
		f      optionFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "declutter [graph.json]",
		Short: "Push overlapping vertices apart",
		Long: `Push overlapping vertices apart until no two vertex disks overlap.

Each vertex is a disk of its label radius (default 1) centred on its x/y
position; z is left alone. Vertices near the middle of the layout move
least. Results are cached, so declutter on an unchanged graph is instant.

Press Ctrl-C to abort; the output file is not written in that case.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = defaultOutput(args[0])
			}
			return c.runDeclutter(cmd, args[0], output, &f)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.arranged.json)")
	f.addSubset(cmd)
	f.addDeclutter(cmd)

	return cmd
}

func (c *CLI) runDeclutter(cmd *cobra.Command, input, output string, f *optionFlags) error {
	ctx := cmd.Context()
	g, err := loadGraph(input)
	if err != nil {
		return err
	}

	runner, ch := c.newRunner(ctx, f.noCache)
	defer ch.Close()

	status := statusWriter(cmd, output)
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Resolving overlaps...")
	opts := c.options(cmd, f, pipeline.StepDeclutter)
	opts.OnPass = func(s overlap.PassStats) {
		spinner.Update("Resolving overlaps... pass %d, %d settled", s.Pass, s.Settled)
	}

	prog := newProgress(c.Logger)
	spinner.Start()
	res, err := runner.Run(ctx, g, opts)
	if err != nil {
		if errors.IsCancelled(err) {
			spinner.StopWithError(status, "Cancelled, nothing written")
		} else {
			spinner.Stop()
		}
		return err
	}
	spinner.StopWithSuccess(status, fmt.Sprintf("Resolved overlaps in %d passes", res.Overlap.Passes))
	prog.done("declutter", "moves", res.Overlap.Moves, "cached", res.CacheHit)

	printStats(status, res.Stats.VertexCount, res.Stats.EdgeCount, res.CacheHit)
	printDetail(status, "%d moves, largest shift %.3g", res.Overlap.Moves, res.Overlap.Shift)
	return saveGraph(cmd, g, output, status)
}
