package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/pkg/arrange"
	"github.com/matzehuels/arrange/pkg/pipeline"
)

// componentsReport is the --json form of the components command.
type componentsReport struct {
	Vertices   int           `json:"vertices"`
	Taxa       map[int][]int `json:"taxa"`
	Singletons []int         `json:"singletons"`
	Doublets   []int         `json:"doublets"`
}

func (c *CLI) componentsCommand() *cobra.Command {
	var (
		f      optionFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "components [graph.json]",
		Short: "List the connected components (taxa) of a graph",
		Long: `List the connected components of a graph, ignoring edge direction.

Isolated vertices are collected in the singleton bucket and two-vertex
components in the doublet bucket; every larger component is keyed by its
lowest vertex id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			opts := c.options(cmd, &f, pipeline.StepComponents)
			res, err := pipeline.NewRunner(nil, nil, c.Logger).Run(cmd.Context(), g, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(newComponentsReport(res.Taxonomy))
			}

			fmt.Fprintln(out, StyleTitle.Render("Components"))
			printStats(out, res.Stats.VertexCount, res.Stats.EdgeCount, false)
			fmt.Fprintln(out, renderTaxa(res.Taxonomy))
			printKeyValue(out, "taxa", StyleNumber.Render(fmt.Sprint(res.Taxonomy.Len()-2)))
			printKeyValue(out, "singletons", StyleNumber.Render(fmt.Sprint(len(res.Taxonomy.Singletons()))))
			printKeyValue(out, "doublets", StyleNumber.Render(fmt.Sprint(len(res.Taxonomy.Doublets())/2)))
			return nil
		},
	}

	f.addSubset(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the taxonomy as JSON")

	return cmd
}

func newComponentsReport(t *arrange.Taxonomy) componentsReport {
	return componentsReport{
		Vertices:   t.VertexCount(),
		Taxa:       t.Map(),
		Singletons: t.Singletons(),
		Doublets:   t.Doublets(),
	}
}
