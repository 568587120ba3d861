package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/pkg/arrange"
	"github.com/matzehuels/arrange/pkg/graph"
	"github.com/matzehuels/arrange/pkg/pipeline"
)

func (c *CLI) centerCommand() *cobra.Command {
	var (
		f      optionFlags
		output string
		mirror bool
	)

	cmd := &cobra.Command{
		Use:   "center [graph.json]",
		Short: "Move the centroid of a graph to a target position",
		Long: `Move the centroid of a graph to a target position (the origin by default).

Secondary positions move by the same offset. With --mirror the primary
positions are copied into the secondary position afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = defaultOutput(args[0])
			}
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			before := arrange.Centroid(g)

			steps := []string{pipeline.StepCenter}
			if mirror {
				steps = append(steps, pipeline.StepMirror)
			}
			opts := c.options(cmd, &f, steps...)
			res, err := pipeline.NewRunner(nil, nil, c.Logger).Run(cmd.Context(), g, opts)
			if err != nil {
				return err
			}

			status := statusWriter(cmd, output)
			printSuccess(status, "Centroid moved %s %s %s", formatVec(before), iconArrow, formatVec(res.Centroid))
			if mirror && !hasSecondary(g) {
				printWarning(status, "graph has no secondary positions, --mirror ignored")
			}
			return saveGraph(cmd, g, output, status)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.arranged.json)")
	cmd.Flags().BoolVar(&mirror, "mirror", false, "copy primary positions into the secondary position")
	f.addCenter(cmd)

	return cmd
}

func hasSecondary(g graph.Reader) bool {
	for _, name := range []string{graph.AttrX2, graph.AttrY2, graph.AttrZ2} {
		if g.Attribute(graph.Vertex, name) == graph.NotFound {
			return false
		}
	}
	return true
}

func formatVec(v arrange.Vec3) string {
	return StyleValue.Render(fmt.Sprintf("(%.4g, %.4g, %.4g)", v.X, v.Y, v.Z))
}
