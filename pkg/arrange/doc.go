// Package arrange implements the graph arrangement primitives: weighted
// reachability distances, weak-component decomposition with size bucketing,
// and centroid-preserving translation.
//
// Every function operates on the capability interfaces of package graph and
// is synchronous. Nothing is cached between calls: results are recomputed
// against the graph snapshot passed in, and the caller is expected to hold
// exclusive access to it for the duration of the call.
//
// # Reachability
//
// [MinDistances] walks breadth-first from a seed vertex and accumulates a
// radius-weighted cost rather than a hop count:
//
//	d := arrange.MinDistances(g, seed, true, false, 1)
//	if d[v] == arrange.Unreached { ... }
//
// Backward hops cost 1.5 times the entered vertex's effective radius. The
// asymmetry is an established layout heuristic and is kept as is.
//
// # Components
//
// [Components] partitions the vertices into weak components. Isolated
// vertices are collected in one bucket keyed [SingletonKey] and two-vertex
// components in one bucket keyed [DoubletKey]; every larger component is its
// own taxon keyed by the vertex that seeded its flood fill:
//
//	tax := arrange.Components(g)
//	for _, key := range tax.SortedKeys() {
//	    fmt.Println(key, tax.Taxon(key))
//	}
//
// # Centroid
//
// [Centroid] averages primary positions in float64. [TranslateTo] shifts the
// primary and, when present, the secondary position so the centroid lands on
// a target. [MirrorSecondary] snapshots the primary pose into the secondary
// attributes.
//
// Overlap resolution lives in the subpackage overlap.
package arrange
