package arrange

import "github.com/matzehuels/arrange/pkg/graph"

// Unreached marks vertices a traversal never reached. It is also the value
// of every slot that does not name a live vertex.
const Unreached float32 = -1

// DefaultRadius is the label radius assumed when a graph has no radius
// attribute.
const DefaultRadius float32 = 1

// backwardWeight scales the cost of entering a vertex against edge direction.
const backwardWeight = 1.5

// MinDistances computes the radius-weighted breadth-first distance from seed
// to every vertex reachable along outgoing edges (forward), incoming edges
// (backward) or both. The result is indexed by vertex id and sized to the
// vertex capacity.
//
// The seed gets distance 0. Expanding a vertex first adds its own effective
// radius, max(minRadius, lradius), to its distance; a forward child then adds
// its effective radius and a backward child 1.5 times its effective radius.
// Each vertex keeps the first distance assigned to it, so distances follow
// BFS layer order rather than true shortest paths.
//
// With both directions disabled only the seed is reached. The graph is not
// modified.
func MinDistances(g graph.Reader, seed int, forward, backward bool, minRadius float32) []float32 {
	dist := make([]float32, g.VertexCapacity())
	for i := range dist {
		dist[i] = Unreached
	}
	if seed < 0 || seed >= len(dist) {
		return dist
	}

	radius := radiusFunc(g, minRadius)
	dist[seed] = 0
	queue := []int{seed}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		base := dist[parent] + radius(parent)

		if forward {
			for i := 0; i < g.VertexEdgeCount(parent, graph.Outgoing); i++ {
				child := g.EdgeDestinationVertex(g.VertexEdge(parent, graph.Outgoing, i))
				if dist[child] == Unreached {
					dist[child] = base + radius(child)
					queue = append(queue, child)
				}
			}
		}
		if backward {
			for i := 0; i < g.VertexEdgeCount(parent, graph.Incoming); i++ {
				child := g.EdgeSourceVertex(g.VertexEdge(parent, graph.Incoming, i))
				if dist[child] == Unreached {
					dist[child] = base + backwardWeight*radius(child)
					queue = append(queue, child)
				}
			}
		}
	}
	return dist
}

// radiusFunc returns the effective radius lookup for g.
func radiusFunc(g graph.Reader, minRadius float32) func(v int) float32 {
	attr := g.Attribute(graph.Vertex, graph.AttrLabelRadius)
	return func(v int) float32 {
		r := DefaultRadius
		if attr != graph.NotFound {
			r = g.FloatValue(attr, v)
		}
		return max(minRadius, r)
	}
}
