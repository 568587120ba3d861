// Package overlap removes overlaps between vertex disks ("nonoverlapping
// repulsion") while disturbing the existing layout as little as possible.
//
// Each vertex is a disk centred on its (x, y) position with its label radius.
// The resolver works in a private frame: the disk nearest the centre of the
// bounding box is moved to the origin and the others follow by the same
// offset. Disks are then pushed outward, closest first, so density around the
// original centre is preserved.
//
// # Algorithm
//
// Disks are sorted by distance from the origin. A settled prefix, initially
// just the innermost disk, is never moved. Every pass re-sorts the disks from
// the last settled one onward, then takes each unsettled disk i in order and
// compares it with every disk before it; an overlapping disk is pushed
// directly away from the other one until the centres are exactly r_i + r_j
// apart. Coincident centres are pushed away from the origin instead, and a
// disk sitting on the origin is pushed along +x. Disk i is swept against the
// disks before it again until a sweep pushes nothing. If that has not
// happened after a fixed number of sweeps, disk i is moved outward along its
// ray from the origin past the reach of every earlier disk. The settled
// prefix then grows by one, and a pass without movement ends the run.
//
// Disks only move while they are being swept, so at the end of a pass every
// disk is clear of all disks before it. The pass after any moving pass
// therefore moves nothing, and a run takes at most two passes.
//
// # Cancellation
//
// The context is polled on every pairwise comparison. A cancelled run
// returns an error carrying the CANCELLED code and the context error, and
// writes nothing:
//
//	res, err := overlap.Resolve(ctx, g, vertices, overlap.Options{})
//	if errors.Is(err, context.Canceled) {
//	    // positions are unchanged
//	}
package overlap
