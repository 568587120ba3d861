package arrange

import (
	"slices"

	"github.com/matzehuels/arrange/pkg/graph"
)

// Reserved taxon keys. Real taxa are keyed by a vertex id, which is never
// negative, so the buckets cannot collide with them.
const (
	// SingletonKey collects every vertex without neighbours.
	SingletonKey = -1
	// DoubletKey collects every two-vertex component.
	DoubletKey = -2
)

// Components partitions all vertices of g into weak components.
// See [ComponentsOf].
func Components(g graph.Reader) *Taxonomy {
	return decompose(g, VertexSet(g))
}

// ComponentsOf partitions the given vertices into weak components, ignoring
// edges that leave the subset. Ids that do not name a live vertex are
// skipped.
//
// Vertices are taken in ascending id order; each flood fill collects every
// vertex weakly reachable through the remaining subset and removes it, so
// the work is proportional to vertices plus edges. Components of one and two
// vertices are merged into the [SingletonKey] and [DoubletKey] buckets;
// larger components are keyed by the vertex that seeded them.
func ComponentsOf(g graph.Reader, subset []int) *Taxonomy {
	live := VertexSet(g)
	potential := make([]bool, len(live))
	for _, v := range subset {
		if v >= 0 && v < len(live) && live[v] {
			potential[v] = true
		}
	}
	return decompose(g, potential)
}

// ComponentContaining returns every vertex weakly reachable from seed,
// including seed, in ascending id order. It returns nil when seed is not a
// live vertex.
func ComponentContaining(g graph.Reader, seed int) []int {
	potential := VertexSet(g)
	if seed < 0 || seed >= len(potential) || !potential[seed] {
		return nil
	}
	members := flood(g, seed, potential)
	slices.Sort(members)
	return members
}

// Sources returns the vertices without incoming edges, in position order.
func Sources(g graph.Reader) []int {
	var out []int
	for pos := 0; pos < g.VertexCount(); pos++ {
		v := g.Vertex(pos)
		if g.VertexEdgeCount(v, graph.Incoming) == 0 {
			out = append(out, v)
		}
	}
	return out
}

// VertexSet returns a membership table indexed by vertex id: entry v is true
// when v is a live vertex of g.
func VertexSet(g graph.Reader) []bool {
	set := make([]bool, g.VertexCapacity())
	for pos := 0; pos < g.VertexCount(); pos++ {
		set[g.Vertex(pos)] = true
	}
	return set
}

func decompose(g graph.Reader, potential []bool) *Taxonomy {
	t := newTaxonomy()
	for v, ok := range potential {
		if !ok {
			continue
		}
		members := flood(g, v, potential)
		switch len(members) {
		case 1:
			t.add(SingletonKey, members)
		case 2:
			t.add(DoubletKey, members)
		default:
			t.add(v, members)
		}
	}
	t.sortMembers()
	return t
}

// flood collects the vertices weakly reachable from seed through potential,
// clearing each one as it is taken.
func flood(g graph.Reader, seed int, potential []bool) []int {
	potential[seed] = false
	members := []int{seed}
	stack := []int{seed}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i := 0; i < g.VertexNeighbourCount(v); i++ {
			n := g.VertexNeighbour(v, i)
			if potential[n] {
				potential[n] = false
				members = append(members, n)
				stack = append(stack, n)
			}
		}
	}
	return members
}
