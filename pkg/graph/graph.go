package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

// =============================================================================
// File - Graph Snapshot Serialization
// =============================================================================

// File is the canonical serialization format for graph snapshots.
//
// Secondary positions and radii are optional: a file in which no vertex
// carries them produces a Store without the corresponding attributes, so the
// algorithms fall back to their documented defaults.
type File struct {
	Vertices []VertexRecord `json:"vertices"`
	Edges    []EdgeRecord   `json:"edges"`
}

// VertexRecord is one vertex of a [File].
type VertexRecord struct {
	ID     int      `json:"id"`
	X      float32  `json:"x"`
	Y      float32  `json:"y"`
	Z      float32  `json:"z"`
	X2     *float32 `json:"x2,omitempty"`
	Y2     *float32 `json:"y2,omitempty"`
	Z2     *float32 `json:"z2,omitempty"`
	Radius *float32 `json:"radius,omitempty"`
}

// EdgeRecord is one directed edge of a [File].
type EdgeRecord struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal converts a graph to indented JSON bytes.
// Vertices are sorted by id for deterministic output.
func Marshal(g Reader) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a graph as JSON to an io.Writer.
func Write(g Reader, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(g Reader, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// Read decodes a JSON graph from an io.Reader into a Store.
func Read(r io.Reader) (*Store, error) {
	var data File
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return Load(data)
}

// ReadFile reads a JSON file and returns the decoded Store.
func ReadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// =============================================================================
// File ↔ Store Conversion
// =============================================================================

// Load builds a Store from a File. Vertex ids keep their file values, so a
// sparse file yields a Store whose capacity exceeds its vertex count.
func Load(f File) (*Store, error) {
	s := NewStore()
	x := s.EnsureFloatAttribute(Vertex, AttrX)
	y := s.EnsureFloatAttribute(Vertex, AttrY)
	z := s.EnsureFloatAttribute(Vertex, AttrZ)

	var hasXYZ2, hasRadius bool
	for _, v := range f.Vertices {
		hasXYZ2 = hasXYZ2 || v.X2 != nil || v.Y2 != nil || v.Z2 != nil
		hasRadius = hasRadius || v.Radius != nil
	}
	x2, y2, z2, radius := NotFound, NotFound, NotFound, NotFound
	if hasXYZ2 {
		x2 = s.EnsureFloatAttribute(Vertex, AttrX2)
		y2 = s.EnsureFloatAttribute(Vertex, AttrY2)
		z2 = s.EnsureFloatAttribute(Vertex, AttrZ2)
	}
	if hasRadius {
		// Vertices without an explicit radius keep the documented default.
		radius, _ = s.AddAttribute(Vertex, FloatAttribute, AttrLabelRadius, float32(1))
	}

	for _, v := range f.Vertices {
		if err := s.AddVertexID(v.ID); err != nil {
			return nil, fmt.Errorf("add vertex %d: %w", v.ID, err)
		}
		s.SetFloatValue(x, v.ID, v.X)
		s.SetFloatValue(y, v.ID, v.Y)
		s.SetFloatValue(z, v.ID, v.Z)
		if hasXYZ2 {
			s.SetFloatValue(x2, v.ID, deref(v.X2, v.X))
			s.SetFloatValue(y2, v.ID, deref(v.Y2, v.Y))
			s.SetFloatValue(z2, v.ID, deref(v.Z2, v.Z))
		}
		if v.Radius != nil {
			s.SetFloatValue(radius, v.ID, *v.Radius)
		}
	}

	for _, e := range f.Edges {
		if _, err := s.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("add edge %d→%d: %w", e.From, e.To, err)
		}
	}
	return s, nil
}

// Export converts any graph Reader into its serialization format.
// Vertices are sorted by id; edges keep position order.
func Export(g Reader) File {
	x := g.Attribute(Vertex, AttrX)
	y := g.Attribute(Vertex, AttrY)
	z := g.Attribute(Vertex, AttrZ)
	x2 := g.Attribute(Vertex, AttrX2)
	y2 := g.Attribute(Vertex, AttrY2)
	z2 := g.Attribute(Vertex, AttrZ2)
	radius := g.Attribute(Vertex, AttrLabelRadius)
	xyz2 := x2 != NotFound && y2 != NotFound && z2 != NotFound

	ids := make([]int, g.VertexCount())
	for pos := range ids {
		ids[pos] = g.Vertex(pos)
	}
	slices.Sort(ids)

	out := File{
		Vertices: make([]VertexRecord, len(ids)),
		Edges:    make([]EdgeRecord, g.EdgeCount()),
	}
	for i, id := range ids {
		rec := VertexRecord{
			ID: id,
			X:  valueOr(g, x, id, 0),
			Y:  valueOr(g, y, id, 0),
			Z:  valueOr(g, z, id, 0),
		}
		if xyz2 {
			rec.X2 = ptr(g.FloatValue(x2, id))
			rec.Y2 = ptr(g.FloatValue(y2, id))
			rec.Z2 = ptr(g.FloatValue(z2, id))
		}
		if radius != NotFound {
			rec.Radius = ptr(g.FloatValue(radius, id))
		}
		out.Vertices[i] = rec
	}
	for pos := range out.Edges {
		e := g.Edge(pos)
		out.Edges[pos] = EdgeRecord{From: g.EdgeSourceVertex(e), To: g.EdgeDestinationVertex(e)}
	}
	return out
}

// =============================================================================
// Internal Helpers
// =============================================================================

func valueOr(g Reader, attr, id int, def float32) float32 {
	if attr == NotFound {
		return def
	}
	return g.FloatValue(attr, id)
}

func deref(p *float32, def float32) float32 {
	if p == nil {
		return def
	}
	return *p
}

func ptr(v float32) *float32 { return &v }
