package cli

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/pkg/arrange"
	"github.com/matzehuels/arrange/pkg/pipeline"
)

// reachReport is the --json form of the reach command. Unreached vertices
// are omitted.
type reachReport struct {
	Seed      int             `json:"seed"`
	Forward   bool            `json:"forward"`
	Backward  bool            `json:"backward"`
	Distances map[int]float32 `json:"distances"`
}

func (c *CLI) reachCommand() *cobra.Command {
	var (
		f      optionFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "reach [graph.json]",
		Short: "Compute weighted distances from a seed vertex",
		Long: `Compute weighted distances from a seed vertex.

Entering a vertex costs its radius (at least --min-radius). Hops against the
edge direction cost 1.5 times as much. Vertices that cannot be reached are
left out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			opts := c.options(cmd, &f, pipeline.StepReach)
			res, err := pipeline.NewRunner(nil, nil, c.Logger).Run(cmd.Context(), g, opts)
			if err != nil {
				return err
			}

			reached := reachedByDistance(res.Distances)
			out := cmd.OutOrStdout()
			if asJSON {
				report := reachReport{
					Seed:      opts.Seed,
					Forward:   opts.Forward,
					Backward:  opts.Backward,
					Distances: make(map[int]float32, len(reached)),
				}
				for _, v := range reached {
					report.Distances[v] = res.Distances[v]
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Fprintln(out, StyleTitle.Render(fmt.Sprintf("Reach from %d", opts.Seed)))
			fmt.Fprintln(out, renderDistances(reached, res.Distances))
			if unreached := res.Stats.VertexCount - len(reached); unreached > 0 {
				printDetail(out, "%d vertices unreached", unreached)
			}
			return nil
		},
	}

	f.addReach(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print distances as JSON")
	_ = cmd.MarkFlagRequired("seed")

	return cmd
}

// reachedByDistance returns the reached vertex ids ordered by distance, ties
// by id.
func reachedByDistance(dist []float32) []int {
	var ids []int
	for v, d := range dist {
		if d != arrange.Unreached {
			ids = append(ids, v)
		}
	}
	slices.SortFunc(ids, func(a, b int) int {
		return cmp.Or(cmp.Compare(dist[a], dist[b]), cmp.Compare(a, b))
	})
	return ids
}
