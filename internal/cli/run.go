package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/pkg/arrange/overlap"
	"github.com/matzehuels/arrange/pkg/errors"
	"github.com/matzehuels/arrange/pkg/pipeline"
)

func (c *CLI) runCommand() *cobra.Command {
	var (
		f      optionFlags
		steps  []string
		output string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "run [graph.json]",
		Short: "Run several arrangement steps in one go",
		Long: `Run several arrangement steps in one go.

Steps run in the order given: components, reach, declutter, center, mirror.
The declutter step is cached like the declutter command.

Example:
  arrange run graph.json --steps declutter,center --x 100 --y 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = defaultOutput(args[0])
			}
			if asJSON && output == "-" {
				return errors.New(errors.ErrCodeInvalidInput, "--json and -o - both write to stdout")
			}
			ctx := cmd.Context()
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			runner, ch := c.newRunner(ctx, f.noCache)
			defer ch.Close()

			opts := c.options(cmd, &f, steps...)
			status := statusWriter(cmd, output)
			if asJSON {
				status = cmd.ErrOrStderr()
			}

			var spinner *Spinner
			if opts.Has(pipeline.StepDeclutter) {
				spinner = newSpinner(ctx, cmd.ErrOrStderr(), "Arranging...")
				opts.OnPass = func(s overlap.PassStats) {
					spinner.Update("Arranging... declutter pass %d", s.Pass)
				}
				spinner.Start()
			}
			res, err := runner.Run(ctx, g, opts)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				if errors.IsCancelled(err) {
					printError(status, "Cancelled, nothing written")
				}
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(newRunReport(res)); err != nil {
					return err
				}
			} else {
				printSuccess(status, "Ran %s", strings.Join(opts.Steps, StyleDim.Render(" → ")))
				printStats(status, res.Stats.VertexCount, res.Stats.EdgeCount, res.CacheHit)
				printKeyValue(status, "run", res.RunID)
				printKeyValue(status, "duration", res.Stats.Total.String())
				if res.Taxonomy != nil {
					printKeyValue(status, "taxa", fmt.Sprint(res.Taxonomy.Len()-2))
				}
				if opts.Has(pipeline.StepDeclutter) {
					printKeyValue(status, "moves", fmt.Sprint(res.Overlap.Moves))
				}
				printKeyValue(status, "centroid", formatVec(res.Centroid))
			}

			return saveGraph(cmd, g, output, status)
		},
	}

	cmd.Flags().StringSliceVar(&steps, "steps", pipeline.DefaultSteps, "steps to run, comma-separated")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.arranged.json)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON run report")
	f.addSubset(cmd)
	f.addReach(cmd)
	f.addDeclutter(cmd)
	f.addCenter(cmd)

	return cmd
}

// runReport is the --json form of the run command.
type runReport struct {
	pipeline.Result
	Taxa map[int][]int `json:"taxa,omitempty"`
}

func newRunReport(res *pipeline.Result) runReport {
	r := runReport{Result: *res}
	if res.Taxonomy != nil {
		r.Taxa = res.Taxonomy.Map()
	}
	return r
}
