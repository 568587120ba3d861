package overlap

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/matzehuels/arrange/pkg/arrange"
	"github.com/matzehuels/arrange/pkg/errors"
	"github.com/matzehuels/arrange/pkg/graph"
)

// DefaultMinDistance is the centre distance below which two disks count as
// coincident and the push direction falls back to the global centre.
const DefaultMinDistance = 1e-6

// tolerance absorbs the rounding left by pushing a disk to exactly the sum of
// the radii, so a resolved pair is not pushed again.
const tolerance = 1e-9

// maxSweeps bounds how often one disk is swept against the disks before it
// in a pass. A disk still overlapping after that is moved outward by escape.
const maxSweeps = 16

// Blob is a disk taking part in overlap resolution.
type Blob struct {
	X, Y   float64
	Radius float64
	Vertex int
}

// PassStats describes one completed pass of the convergence loop.
type PassStats struct {
	Pass    int // 1-based
	Moves   int // pushes performed during the pass
	Settled int // disks fixed after the pass
}

// Options configures overlap resolution.
type Options struct {
	// MinDistance is the coincidence epsilon. Zero selects DefaultMinDistance.
	MinDistance float64

	// OnPass, if set, is called after every pass.
	OnPass func(PassStats)
}

func (o Options) minDistance() float64 {
	if o.MinDistance > 0 {
		return o.MinDistance
	}
	return DefaultMinDistance
}

// Result summarises a resolution run.
type Result struct {
	Passes int `json:"passes"`
	Moves  int `json:"moves"`
	// Shift is the largest distance any disk moved from its input position.
	Shift float64 `json:"shift"`
}

// =============================================================================
// Graph Entry Point
// =============================================================================

// Resolve pushes the given vertices apart until no two of their disks
// overlap and writes the new x and y back to g. A vertex's disk is centred
// on its primary position and sized by its label radius (default 1, negative
// radii count as 0). The z coordinate and all other vertices are untouched.
//
// A graph without x or y attributes has nowhere to store positions; Resolve
// then returns a zero Result and leaves g alone. Callers that want every
// vertex spread out create the attributes first.
//
// Nothing is written unless the run completes: on cancellation Resolve
// returns an error with code CANCELLED that wraps ctx.Err(), and the graph
// keeps its previous positions.
func Resolve(ctx context.Context, g graph.Writer, vertices []int, opts Options) (Result, error) {
	x := g.Attribute(graph.Vertex, graph.AttrX)
	y := g.Attribute(graph.Vertex, graph.AttrY)
	r := g.Attribute(graph.Vertex, graph.AttrLabelRadius)
	if x == graph.NotFound || y == graph.NotFound {
		return Result{}, nil
	}

	blobs := make([]Blob, len(vertices))
	for i, v := range vertices {
		radius := arrange.DefaultRadius
		if r != graph.NotFound {
			radius = max(0, g.FloatValue(r, v))
		}
		blobs[i] = Blob{
			X:      float64(g.FloatValue(x, v)),
			Y:      float64(g.FloatValue(y, v)),
			Radius: float64(radius),
			Vertex: v,
		}
	}

	res, err := ResolveBlobs(ctx, blobs, opts)
	if err != nil {
		return res, err
	}
	for _, b := range blobs {
		g.SetFloatValue(x, b.Vertex, float32(b.X))
		g.SetFloatValue(y, b.Vertex, float32(b.Y))
	}
	return res, nil
}

// =============================================================================
// Convergence Loop
// =============================================================================

type disk struct {
	x, y, r float64
	index   int // position in the caller's slice
}

func (d *disk) norm2() float64 { return d.x*d.x + d.y*d.y }

// ResolveBlobs runs the convergence loop over caller-owned blobs and updates
// their X and Y in place when it completes. See the package documentation
// for the algorithm. Blobs with a NaN or infinite coordinate or radius are
// rejected with INVALID_INPUT. On error the blobs are left untouched.
func ResolveBlobs(ctx context.Context, blobs []Blob, opts Options) (Result, error) {
	var res Result
	if err := ctx.Err(); err != nil {
		return res, errors.Cancelled(err, "overlap resolution cancelled")
	}
	for _, b := range blobs {
		if !finite(b.X) || !finite(b.Y) || !finite(b.Radius) {
			return res, errors.New(errors.ErrCodeInvalidInput,
				"vertex %d has a non-finite position or radius", b.Vertex)
		}
	}
	if len(blobs) < 2 {
		return res, nil
	}

	disks, ox, oy := frame(blobs)
	eps := opts.minDistance()

	settled := 1
	for {
		sortByCentreDistance(disks[settled-1:])

		moved := 0
		for i := settled; i < len(disks); i++ {
			n, err := separate(ctx, disks, i, eps)
			moved += n
			if err != nil {
				return res, errors.Cancelled(err, "overlap resolution cancelled after %d passes", res.Passes)
			}
		}
		res.Passes++
		res.Moves += moved
		settled = min(settled+1, len(disks))

		if opts.OnPass != nil {
			opts.OnPass(PassStats{Pass: res.Passes, Moves: moved, Settled: settled})
		}
		if moved == 0 {
			break
		}
	}

	for _, d := range disks {
		b := &blobs[d.index]
		nx, ny := d.x+ox, d.y+oy
		res.Shift = max(res.Shift, math.Hypot(nx-b.X, ny-b.Y))
		b.X, b.Y = nx, ny
	}
	return res, nil
}

// separate pushes disks[i] away from each of disks[:i] in order, sweeping
// again while the last sweep pushed, until disks[i] overlaps none of them.
// It returns the number of moves and ctx.Err() if the context ends.
func separate(ctx context.Context, disks []disk, i int, eps float64) (int, error) {
	a := &disks[i]
	moves := 0
	for range maxSweeps {
		pushed := 0
		for j := range i {
			select {
			case <-ctx.Done():
				return moves + pushed, ctx.Err()
			default:
			}
			if push(a, &disks[j], eps) {
				pushed++
			}
		}
		if pushed == 0 {
			return moves, nil
		}
		moves += pushed
	}
	if escape(disks, i) {
		moves++
	}
	return moves, nil
}

// escape moves disks[i] along its ray from the origin (+x from the origin
// itself) to a distance no disk before it can reach, and reports whether it
// had to move. It runs when sweeping did not separate a disk, which happens
// for disks of different sizes lined up on one axis.
func escape(disks []disk, i int) bool {
	if isClear(disks, i) {
		return false
	}
	a := &disks[i]
	reach := 0.0
	for _, b := range disks[:i] {
		reach = max(reach, math.Sqrt(b.norm2())+b.r)
	}
	reach += a.r + tolerance

	ux, uy := 1.0, 0.0
	if n := math.Sqrt(a.norm2()); n > 0 {
		ux, uy = a.x/n, a.y/n
	}
	a.x, a.y = ux*reach, uy*reach
	return true
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// frame copies the blobs into disks translated so that the disk nearest the
// bounding-box centre sits at the origin, sorted by distance from it. It
// returns the offset that maps the frame back to the input coordinates.
func frame(blobs []Blob) (disks []disk, ox, oy float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, b := range blobs {
		minX = min(minX, b.X-b.Radius)
		minY = min(minY, b.Y-b.Radius)
		maxX = max(maxX, b.X+b.Radius)
		maxY = max(maxY, b.Y+b.Radius)
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	nearest, best := 0, math.Inf(1)
	for i, b := range blobs {
		dx, dy := b.X-cx, b.Y-cy
		if d := dx*dx + dy*dy; d < best {
			nearest, best = i, d
		}
	}
	ox, oy = blobs[nearest].X, blobs[nearest].Y

	disks = make([]disk, len(blobs))
	for i, b := range blobs {
		disks[i] = disk{x: b.X - ox, y: b.Y - oy, r: b.Radius, index: i}
	}
	sortByCentreDistance(disks)
	return disks, ox, oy
}

// sortByCentreDistance orders disks by distance from the origin. The sort is
// stable so equal distances keep their previous order.
func sortByCentreDistance(disks []disk) {
	slices.SortStableFunc(disks, func(a, b disk) int {
		return cmp.Compare(a.norm2(), b.norm2())
	})
}

// push moves a away from b until their centres are exactly r_a + r_b apart
// and reports whether they overlapped.
func push(a, b *disk, eps float64) bool {
	dx, dy := a.x-b.x, a.y-b.y
	d := math.Hypot(dx, dy)
	want := a.r + b.r
	if want-d <= tolerance {
		return false
	}

	switch {
	case d > eps:
		a.x = b.x + dx*want/d
		a.y = b.y + dy*want/d
	case a.x != 0 || a.y != 0:
		// Coincident centres: push away from the global centre.
		n := math.Sqrt(a.norm2())
		a.x = b.x + a.x*want/n
		a.y = b.y + a.y*want/n
	default:
		a.x += want
	}
	return true
}

// isClear reports whether disks[i] overlaps none of disks[:i].
func isClear(disks []disk, i int) bool {
	a := disks[i]
	for j := range i {
		b := disks[j]
		if a.r+b.r-math.Hypot(a.x-b.x, a.y-b.y) > tolerance {
			return false
		}
	}
	return true
}
