package arrange_test

import (
	"fmt"

	"github.com/matzehuels/arrange/pkg/arrange"
	"github.com/matzehuels/arrange/pkg/graph"
)

func ExampleComponents() {
	g := graph.NewStore()
	for range 6 {
		g.AddVertex()
	}
	// 0-1-2 form a component, 3 is isolated, 4-5 is a pair.
	_, _ = g.AddEdge(0, 1)
	_, _ = g.AddEdge(1, 2)
	_, _ = g.AddEdge(4, 5)

	tax := arrange.Components(g)
	for _, key := range tax.SortedKeys() {
		fmt.Println(key, tax.Taxon(key))
	}
	// Output:
	// -1 [3]
	// -2 [4 5]
	// 0 [0 1 2]
}

func ExampleMinDistances() {
	g := graph.NewStore()
	a, b, c := g.AddVertex(), g.AddVertex(), g.AddVertex()
	_, _ = g.AddEdge(a, b)
	_, _ = g.AddEdge(c, a)

	fmt.Println("forward: ", arrange.MinDistances(g, a, true, false, 0))
	fmt.Println("backward:", arrange.MinDistances(g, a, false, true, 0))
	fmt.Println("neither: ", arrange.MinDistances(g, a, false, false, 0))
	// Output:
	// forward:  [0 2 -1]
	// backward: [0 -1 2.5]
	// neither:  [0 -1 -1]
}

func ExampleTranslateTo() {
	g := graph.NewStore()
	x := g.EnsureFloatAttribute(graph.Vertex, graph.AttrX)
	for _, v := range []float32{0, 4} {
		g.SetFloatValue(x, g.AddVertex(), v)
	}

	arrange.TranslateTo(g, arrange.Vec3{X: 10})
	fmt.Println(g.FloatValue(x, 0), g.FloatValue(x, 1), arrange.Centroid(g))
	// Output:
	// 8 12 {10 0 0}
}
