// Package pkg provides the libraries behind the arrange command.
//
// # Overview
//
// Arrange post-processes graph layouts. It does not compute a layout from
// scratch; it takes positioned vertices and makes the picture easier to
// read. The pkg directory is organized into these areas:
//
//  1. [graph] - In-memory vertex/edge store with named attributes and the
//     JSON snapshot format
//  2. [arrange] - Components, weighted reachability and centroid helpers
//  3. [arrange/overlap] - Nonoverlapping repulsion of vertex disks
//  4. [pipeline] - Runs steps in order with caching and instrumentation
//  5. [cache], [config], [errors], [observability] - Supporting infrastructure
//
// # Data Flow
//
//	graph.json
//	     ↓
//	[graph] package (Store)
//	     ↓
//	[pipeline] Runner: components → reach → declutter → center → mirror
//	     ↓                              ↕
//	arranged graph.json            [cache] (file or Redis)
//
// # Quick Start
//
//	g, _ := graph.ReadFile("graph.json")
//
//	taxa := arrange.Components(g)
//	dist := arrange.MinDistances(g, 0, true, false, 1)
//
//	_, err := overlap.Resolve(ctx, g, taxa.Taxon(0), overlap.Options{})
//	if err != nil {
//	    return err
//	}
//	arrange.TranslateTo(g, arrange.Vec3{})
//	_ = graph.WriteFile(g, "arranged.json")
//
// Or through the pipeline, which adds caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Run(ctx, g, pipeline.Options{})
//
// # Testing
//
//	go test ./pkg/...                  # All tests
//	go test ./pkg/arrange/overlap/...  # Specific package
//	go test -run Example ./pkg/...     # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/graph
// [arrange]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/arrange
// [arrange/overlap]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/arrange/overlap
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/observability
package pkg
