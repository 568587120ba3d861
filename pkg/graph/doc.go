// Package graph provides the graph accessor capabilities consumed by the
// arrangement algorithms, an in-memory implementation, and the JSON snapshot
// format used by the CLI and the cache.
//
// # Capabilities
//
// Algorithms depend on two interfaces rather than a concrete type:
//
//   - [Reader]: vertex/edge enumeration, neighbour adjacency and typed
//     attribute reads
//   - [Writer]: [Reader] plus float attribute writes
//
// Callers that own a richer graph model adapt it to these interfaces; the
// algorithms never lock and trust the caller to hold exclusive access for the
// duration of a call.
//
// # Identifiers
//
// Vertex ids are stable integers below [Reader.VertexCapacity]. Positions
// (0 ≤ p < VertexCount) enumerate the live vertices densely. After removals
// the two differ, which is why distance maps are sized by capacity.
//
// The reserved value [NotFound] (-1) means "attribute not present". It is
// never an error: every algorithm substitutes its documented default.
//
// # Store
//
// [Store] is the in-memory [Writer] used by the CLI, the pipeline and tests:
//
//	s := graph.NewStore()
//	a, b := s.AddVertex(), s.AddVertex()
//	s.AddEdge(a, b)
//	x := s.EnsureFloatAttribute(graph.Vertex, graph.AttrX)
//	s.SetFloatValue(x, b, 10)
//
// # Serialization
//
// Snapshots use a simple JSON format:
//
//	{
//	  "vertices": [{"id": 0, "x": 0, "y": 0, "z": 0, "radius": 2}],
//	  "edges": [{"from": 0, "to": 1}]
//	}
//
// Common operations:
//
//	s, _ := graph.ReadFile("graph.json")   // File → Store
//	graph.WriteFile(s, "out.json")         // Store → File
//	data, _ := graph.Marshal(s)            // Store → []byte
//
// # Visual attributes
//
// The arrangement algorithms read and write these vertex attributes:
//
//	x, y, z       primary position
//	x2, y2, z2    secondary position (optional, used for animated blending)
//	lradius       label radius, the effective disk radius (optional, default 1)
package graph
