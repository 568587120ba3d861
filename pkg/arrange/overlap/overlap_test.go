package overlap

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/arrange/pkg/errors"
	"github.com/matzehuels/arrange/pkg/graph"
)

func lattice(n int, ox, oy float64) []Blob {
	blobs := make([]Blob, n)
	for i := range blobs {
		blobs[i] = Blob{
			X:      ox + float64(i%6)*0.5,
			Y:      oy + float64(i/6)*0.5,
			Radius: 1,
			Vertex: i,
		}
	}
	return blobs
}

func mixed(n int) []Blob {
	blobs := make([]Blob, n)
	for i := range blobs {
		blobs[i] = Blob{
			X:      float64(i*37%17) * 0.7,
			Y:      float64(i*53%13) * 0.6,
			Radius: 0.5 + float64(i%5)*0.3,
			Vertex: i,
		}
	}
	return blobs
}

// stacked returns n disks at (x, y) with radii between 0.21 and 2.81.
func stacked(n int, x, y float64) []Blob {
	blobs := make([]Blob, n)
	for i := range blobs {
		blobs[i] = Blob{X: x, Y: y, Radius: 0.21 + float64(i*7%27)*0.1, Vertex: i}
	}
	return blobs
}

func assertNoOverlap(t *testing.T, blobs []Blob, tol float64) {
	t.Helper()
	for i := range blobs {
		for j := range i {
			a, b := blobs[i], blobs[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			assert.GreaterOrEqual(t, d, a.Radius+b.Radius-tol, "disks %d and %d overlap", i, j)
		}
	}
}

func TestResolveBlobsTwoDisks(t *testing.T) {
	blobs := []Blob{
		{X: 0, Y: 0, Radius: 2, Vertex: 0},
		{X: 1, Y: 0, Radius: 2, Vertex: 1},
	}
	res, err := ResolveBlobs(context.Background(), blobs, Options{})
	require.NoError(t, err)

	assert.InDelta(t, 4, math.Hypot(blobs[1].X-blobs[0].X, blobs[1].Y-blobs[0].Y), 1e-9)
	assert.Equal(t, Blob{X: 0, Y: 0, Radius: 2, Vertex: 0}, blobs[0], "innermost disk stays put")
	assert.InDelta(t, 4, blobs[1].X, 1e-9)
	assert.Equal(t, 2, res.Passes)
	assert.Equal(t, 1, res.Moves)
	assert.InDelta(t, 3, res.Shift, 1e-9)
}

func TestResolveBlobsDegenerateCases(t *testing.T) {
	tests := []struct {
		name  string
		blobs []Blob
		want  []Blob
	}{
		{
			name:  "CoincidentAtCentre",
			blobs: []Blob{{Radius: 1}, {Radius: 1, Vertex: 1}},
			want:  []Blob{{Radius: 1}, {X: 2, Radius: 1, Vertex: 1}},
		},
		{
			name: "CoincidentAwayFromCentre",
			blobs: []Blob{
				{Radius: 1},
				{X: 5, Radius: 1, Vertex: 1},
				{X: 5, Radius: 1, Vertex: 2},
			},
			want: []Blob{
				{Radius: 1},
				{X: 5, Radius: 1, Vertex: 1},
				{X: 7, Radius: 1, Vertex: 2},
			},
		},
		{
			name:  "AlreadySeparate",
			blobs: []Blob{{Radius: 1}, {X: 3, Y: 3, Radius: 1, Vertex: 1}},
			want:  []Blob{{Radius: 1}, {X: 3, Y: 3, Radius: 1, Vertex: 1}},
		},
		{
			name:  "Touching",
			blobs: []Blob{{Radius: 1}, {X: 2, Radius: 1, Vertex: 1}},
			want:  []Blob{{Radius: 1}, {X: 2, Radius: 1, Vertex: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveBlobs(context.Background(), tt.blobs, Options{})
			require.NoError(t, err)
			for i := range tt.want {
				assert.InDelta(t, tt.want[i].X, tt.blobs[i].X, 1e-9, "x of %d", i)
				assert.InDelta(t, tt.want[i].Y, tt.blobs[i].Y, 1e-9, "y of %d", i)
			}
		})
	}
}

func TestResolveBlobsTrivialInputs(t *testing.T) {
	res, err := ResolveBlobs(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Passes)

	one := []Blob{{X: 3, Y: 4, Radius: 10}}
	_, err = ResolveBlobs(context.Background(), one, Options{})
	require.NoError(t, err)
	assert.Equal(t, Blob{X: 3, Y: 4, Radius: 10}, one[0])
}

func TestResolveBlobsNoOverlapAfterRun(t *testing.T) {
	tests := []struct {
		name  string
		blobs []Blob
	}{
		{"Lattice24", lattice(24, 0, 0)},
		{"Lattice36", lattice(36, 0, 0)},
		{"MixedRadii", mixed(60)},
		{"AllCoincident", make([]Blob, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := range tt.blobs {
				if tt.blobs[i].Radius == 0 {
					tt.blobs[i].Radius = 1
				}
			}
			res, err := ResolveBlobs(context.Background(), tt.blobs, Options{})
			require.NoError(t, err)
			assert.Positive(t, res.Moves)
			assertNoOverlap(t, tt.blobs, 1e-6)

			// Re-running on resolved output is a no-op.
			again, err := ResolveBlobs(context.Background(), tt.blobs, Options{})
			require.NoError(t, err)
			assert.Less(t, again.Shift, 1e-6)
		})
	}
}

func TestResolveBlobsStackedDisks(t *testing.T) {
	tests := []struct {
		name  string
		blobs []Blob
	}{
		{"MixedRadiiAtOrigin", stacked(27, 0, 0)},
		{"MixedRadiiOffCentre", stacked(40, 3, -2)},
		{"TwoStacks", append(stacked(20, 0, 0), stacked(20, 1, 1)...)},
		{"TinyAndHuge", []Blob{{Radius: 0.01}, {Radius: 50, Vertex: 1}, {Radius: 0.01, Vertex: 2}, {Radius: 3, Vertex: 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			res, err := ResolveBlobs(ctx, tt.blobs, Options{})
			require.NoError(t, err, "must converge well before the deadline")
			assert.LessOrEqual(t, res.Passes, 2)
			assertNoOverlap(t, tt.blobs, 1e-6)
		})
	}
}

func TestResolveBlobsSettledGrowsEveryPass(t *testing.T) {
	var stats []PassStats
	_, err := ResolveBlobs(context.Background(), stacked(27, 0, 0), Options{
		OnPass: func(s PassStats) { stats = append(stats, s) },
	})
	require.NoError(t, err)
	for i, s := range stats {
		assert.Equal(t, i+2, s.Settled, "pass %d", s.Pass)
	}
}

func TestResolveBlobsRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name string
		blob Blob
	}{
		{"NaNX", Blob{X: math.NaN(), Radius: 1, Vertex: 1}},
		{"InfY", Blob{Y: math.Inf(1), Radius: 1, Vertex: 1}},
		{"NaNRadius", Blob{Radius: math.NaN(), Vertex: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := []Blob{{Radius: 1}, tt.blob}
			_, err := ResolveBlobs(context.Background(), blobs, Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
			assert.Equal(t, Blob{Radius: 1}, blobs[0], "nothing moves")
		})
	}
}

func TestResolveBlobsTranslationInvariant(t *testing.T) {
	a := lattice(24, 0, 0)
	b := lattice(24, 100, -50)
	_, err := ResolveBlobs(context.Background(), a, Options{})
	require.NoError(t, err)
	_, err = ResolveBlobs(context.Background(), b, Options{})
	require.NoError(t, err)

	for i := range a {
		assert.InDelta(t, a[i].X+100, b[i].X, 1e-6)
		assert.InDelta(t, a[i].Y-50, b[i].Y, 1e-6)
	}
}

func TestResolveBlobsDeterministic(t *testing.T) {
	a, b := mixed(40), mixed(40)
	ra, err := ResolveBlobs(context.Background(), a, Options{})
	require.NoError(t, err)
	rb, err := ResolveBlobs(context.Background(), b, Options{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, ra, rb)
}

func TestResolveBlobsOnPass(t *testing.T) {
	var stats []PassStats
	res, err := ResolveBlobs(context.Background(), lattice(24, 0, 0), Options{
		OnPass: func(s PassStats) { stats = append(stats, s) },
	})
	require.NoError(t, err)
	require.Len(t, stats, res.Passes)

	total := 0
	for i, s := range stats {
		assert.Equal(t, i+1, s.Pass)
		total += s.Moves
	}
	assert.Equal(t, res.Moves, total)
	assert.Zero(t, stats[len(stats)-1].Moves, "last pass is motionless")
}

// =============================================================================
// Cancellation
// =============================================================================

func TestResolveBlobsPreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blobs := lattice(12, 0, 0)
	before := append([]Blob(nil), blobs...)
	_, err := ResolveBlobs(ctx, blobs, Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, errors.Is(err, errors.ErrCodeCancelled))
	assert.Equal(t, before, blobs)
}

func TestResolveBlobsCancelledBetweenPasses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	blobs := lattice(24, 0, 0)
	before := append([]Blob(nil), blobs...)
	res, err := ResolveBlobs(ctx, blobs, Options{
		OnPass: func(s PassStats) {
			if s.Pass == 1 {
				cancel()
			}
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, res.Passes)
	assert.Equal(t, before, blobs, "cancelled run writes nothing")
}

func TestResolveBlobsDeadlineOnLargeCluster(t *testing.T) {
	blobs := lattice(5000, 0, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := ResolveBlobs(ctx, blobs, Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second, "cancellation must be prompt")
}

// =============================================================================
// Graph Entry Point
// =============================================================================

func store(t *testing.T, pts [][3]float32, radii []float32) *graph.Store {
	t.Helper()
	s := graph.NewStore()
	x := s.EnsureFloatAttribute(graph.Vertex, graph.AttrX)
	y := s.EnsureFloatAttribute(graph.Vertex, graph.AttrY)
	z := s.EnsureFloatAttribute(graph.Vertex, graph.AttrZ)
	r := graph.NotFound
	if radii != nil {
		r = s.EnsureFloatAttribute(graph.Vertex, graph.AttrLabelRadius)
	}
	for i, p := range pts {
		v := s.AddVertex()
		s.SetFloatValue(x, v, p[0])
		s.SetFloatValue(y, v, p[1])
		s.SetFloatValue(z, v, p[2])
		if radii != nil {
			s.SetFloatValue(r, v, radii[i])
		}
	}
	return s
}

func TestResolveGraph(t *testing.T) {
	s := store(t, [][3]float32{{0, 0, 7}, {1, 0, 8}}, []float32{2, 2})

	res, err := Resolve(context.Background(), s, []int{0, 1}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Moves)

	x := s.Attribute(graph.Vertex, graph.AttrX)
	z := s.Attribute(graph.Vertex, graph.AttrZ)
	assert.InDelta(t, 4, s.FloatValue(x, 1), 1e-5)
	assert.Equal(t, float32(7), s.FloatValue(z, 0), "z untouched")
	assert.Equal(t, float32(8), s.FloatValue(z, 1), "z untouched")
}

func TestResolveGraphDefaultRadiusAndSubset(t *testing.T) {
	// No radius attribute: every disk has radius 1. Vertex 2 is not part of
	// the run and must not move even though it overlaps.
	s := store(t, [][3]float32{{0, 0, 0}, {0.5, 0, 0}, {0.2, 0, 0}}, nil)

	_, err := Resolve(context.Background(), s, []int{0, 1}, Options{})
	require.NoError(t, err)

	x := s.Attribute(graph.Vertex, graph.AttrX)
	assert.InDelta(t, 2, math.Abs(float64(s.FloatValue(x, 1)-s.FloatValue(x, 0))), 1e-5)
	assert.Equal(t, float32(0.2), s.FloatValue(x, 2))
}

func TestResolveGraphNegativeRadius(t *testing.T) {
	s := store(t, [][3]float32{{0, 0, 0}, {0.5, 0, 0}}, []float32{-3, 1})

	_, err := Resolve(context.Background(), s, []int{0, 1}, Options{})
	require.NoError(t, err)

	x := s.Attribute(graph.Vertex, graph.AttrX)
	assert.InDelta(t, 1, math.Abs(float64(s.FloatValue(x, 1)-s.FloatValue(x, 0))), 1e-5)
}

func TestResolveGraphWithoutPositions(t *testing.T) {
	s := graph.NewStore()
	s.AddVertex()
	s.AddVertex()

	res, err := Resolve(context.Background(), s, []int{0, 1}, Options{})
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
	assert.Equal(t, graph.NotFound, s.Attribute(graph.Vertex, graph.AttrX))
}

func TestResolveGraphNaNPosition(t *testing.T) {
	s := store(t, [][3]float32{{0, 0, 0}, {float32(math.NaN()), 0, 0}}, nil)

	_, err := Resolve(context.Background(), s, []int{0, 1}, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	x := s.Attribute(graph.Vertex, graph.AttrX)
	assert.Equal(t, float32(0), s.FloatValue(x, 0))
}

func TestResolveGraphCancelledWritesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := store(t, [][3]float32{{0, 0, 0}, {1, 0, 0}}, nil)
	_, err := Resolve(ctx, s, []int{0, 1}, Options{})
	require.Error(t, err)

	x := s.Attribute(graph.Vertex, graph.AttrX)
	assert.Equal(t, float32(1), s.FloatValue(x, 1))
}

func TestResolveGraphIdempotent(t *testing.T) {
	pts := make([][3]float32, 24)
	ids := make([]int, len(pts))
	for i, b := range lattice(24, 0, 0) {
		pts[i] = [3]float32{float32(b.X), float32(b.Y), 0}
		ids[i] = i
	}
	s := store(t, pts, nil)

	_, err := Resolve(context.Background(), s, ids, Options{})
	require.NoError(t, err)
	again, err := Resolve(context.Background(), s, ids, Options{})
	require.NoError(t, err)
	assert.Less(t, again.Shift, 1e-3)
}
