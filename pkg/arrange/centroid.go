package arrange

import "github.com/matzehuels/arrange/pkg/graph"

// Vec3 is a position in layout space.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

type position struct {
	x, y, z int
}

func primary(g graph.Reader) position {
	return position{
		x: g.Attribute(graph.Vertex, graph.AttrX),
		y: g.Attribute(graph.Vertex, graph.AttrY),
		z: g.Attribute(graph.Vertex, graph.AttrZ),
	}
}

// secondary returns the secondary position attributes and whether all three
// exist.
func secondary(g graph.Reader) (position, bool) {
	p := position{
		x: g.Attribute(graph.Vertex, graph.AttrX2),
		y: g.Attribute(graph.Vertex, graph.AttrY2),
		z: g.Attribute(graph.Vertex, graph.AttrZ2),
	}
	return p, p.x != graph.NotFound && p.y != graph.NotFound && p.z != graph.NotFound
}

// Centroid returns the mean primary position of all vertices. Coordinates
// are accumulated in float64; an empty graph yields the zero vector. Missing
// position attributes contribute zero.
func Centroid(g graph.Reader) Vec3 {
	n := g.VertexCount()
	ids := make([]int, n)
	for pos := range ids {
		ids[pos] = g.Vertex(pos)
	}
	return mean(g, primary(g), ids)
}

// SubsetCentroid returns the mean primary position of the given vertices.
func SubsetCentroid(g graph.Reader, vertices []int) Vec3 {
	return mean(g, primary(g), vertices)
}

func mean(g graph.Reader, p position, ids []int) Vec3 {
	if len(ids) == 0 {
		return Vec3{}
	}
	var sx, sy, sz float64
	for _, v := range ids {
		sx += float64(g.FloatValue(p.x, v))
		sy += float64(g.FloatValue(p.y, v))
		sz += float64(g.FloatValue(p.z, v))
	}
	n := float64(len(ids))
	return Vec3{X: float32(sx / n), Y: float32(sy / n), Z: float32(sz / n)}
}

// TranslateTo shifts every vertex so that the centroid becomes target.
// Secondary positions are shifted by the same offset when all three
// secondary attributes exist. Relative layout is unchanged.
func TranslateTo(g graph.Writer, target Vec3) {
	current := Centroid(g)
	dx := float64(target.X) - float64(current.X)
	dy := float64(target.Y) - float64(current.Y)
	dz := float64(target.Z) - float64(current.Z)

	p := primary(g)
	s, hasSecondary := secondary(g)
	for pos := 0; pos < g.VertexCount(); pos++ {
		v := g.Vertex(pos)
		shift(g, p, v, dx, dy, dz)
		if hasSecondary {
			shift(g, s, v, dx, dy, dz)
		}
	}
}

func shift(g graph.Writer, p position, v int, dx, dy, dz float64) {
	g.SetFloatValue(p.x, v, float32(float64(g.FloatValue(p.x, v))+dx))
	g.SetFloatValue(p.y, v, float32(float64(g.FloatValue(p.y, v))+dy))
	g.SetFloatValue(p.z, v, float32(float64(g.FloatValue(p.z, v))+dz))
}

// MirrorSecondary copies each vertex's primary position into its secondary
// position. It does nothing unless all three secondary attributes exist.
func MirrorSecondary(g graph.Writer) {
	s, ok := secondary(g)
	if !ok {
		return
	}
	p := primary(g)
	for pos := 0; pos < g.VertexCount(); pos++ {
		v := g.Vertex(pos)
		g.SetFloatValue(s.x, v, g.FloatValue(p.x, v))
		g.SetFloatValue(s.y, v, g.FloatValue(p.y, v))
		g.SetFloatValue(s.z, v, g.FloatValue(p.z, v))
	}
}
