package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownVertex is returned when a vertex id does not name a live vertex.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrUnknownEdge is returned when an edge id does not name a live edge.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrDuplicateVertex is returned by [Store.AddVertexID] when the id is taken.
	ErrDuplicateVertex = errors.New("duplicate vertex id")

	// ErrInvalidVertexID is returned by [Store.AddVertexID] for negative ids.
	ErrInvalidVertexID = errors.New("vertex id must not be negative")

	// ErrDuplicateAttribute is returned when an attribute name is already in
	// use for the same element kind.
	ErrDuplicateAttribute = errors.New("duplicate attribute")

	// ErrInvalidAttributeName is returned when an attribute name is empty.
	ErrInvalidAttributeName = errors.New("attribute name must not be empty")
)

type edge struct {
	src, dst int
}

type attribute struct {
	kind   ElementType
	typ    AttributeType
	name   string
	floats []float32
	ints   []int
	bools  []bool
	defF   float32
	defI   int
	defB   bool
}

func (a *attribute) grow(n int) {
	switch a.typ {
	case FloatAttribute:
		for len(a.floats) < n {
			a.floats = append(a.floats, a.defF)
		}
	case IntAttribute:
		for len(a.ints) < n {
			a.ints = append(a.ints, a.defI)
		}
	case BoolAttribute:
		for len(a.bools) < n {
			a.bools = append(a.bools, a.defB)
		}
	}
}

func (a *attribute) reset(id int) {
	switch a.typ {
	case FloatAttribute:
		a.floats[id] = a.defF
	case IntAttribute:
		a.ints[id] = a.defI
	case BoolAttribute:
		a.bools[id] = a.defB
	}
}

// Store is an in-memory graph implementing [Writer]. Vertex and edge ids are
// never reused while the store lives; removing an element leaves a hole below
// the capacity, so ids and positions are not interchangeable.
//
// The zero value is not usable - use NewStore.
// Store is not safe for concurrent use without external synchronization.
type Store struct {
	vAlive []bool
	vOrder []int // position -> vertex id
	vPos   []int // vertex id -> position, -1 when dead

	edges  []edge
	eAlive []bool
	eOrder []int
	ePos   []int

	out  [][]int // vertex id -> outgoing edge ids
	in   [][]int // vertex id -> incoming edge ids
	nbrs [][]int // vertex id -> distinct neighbour ids

	attrs  []*attribute
	byName map[ElementType]map[string]int
}

// NewStore creates an empty graph without attributes.
func NewStore() *Store {
	return &Store{
		byName: map[ElementType]map[string]int{
			Vertex:      {},
			Transaction: {},
		},
	}
}

// =============================================================================
// Vertices
// =============================================================================

// AddVertex adds a vertex with the next free id and returns the id.
func (s *Store) AddVertex() int {
	id := len(s.vAlive)
	_ = s.AddVertexID(id)
	return id
}

// AddVertexID adds a vertex with an explicit id, growing the capacity when
// needed. Ids between the previous capacity and id stay unallocated.
func (s *Store) AddVertexID(id int) error {
	if id < 0 {
		return ErrInvalidVertexID
	}
	for len(s.vAlive) <= id {
		s.vAlive = append(s.vAlive, false)
		s.vPos = append(s.vPos, -1)
		s.out = append(s.out, nil)
		s.in = append(s.in, nil)
		s.nbrs = append(s.nbrs, nil)
	}
	if s.vAlive[id] {
		return fmt.Errorf("%w: %d", ErrDuplicateVertex, id)
	}
	s.vAlive[id] = true
	s.vPos[id] = len(s.vOrder)
	s.vOrder = append(s.vOrder, id)
	for _, a := range s.attrs {
		if a.kind == Vertex {
			a.grow(len(s.vAlive))
			a.reset(id)
		}
	}
	return nil
}

// RemoveVertex removes a vertex and every edge incident to it. The last
// vertex position is moved into the freed position.
func (s *Store) RemoveVertex(id int) error {
	if !s.HasVertex(id) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, id)
	}
	incident := append(slices.Clone(s.out[id]), s.in[id]...)
	for _, e := range incident {
		if s.eAlive[e] {
			_ = s.RemoveEdge(e)
		}
	}
	pos := s.vPos[id]
	last := s.vOrder[len(s.vOrder)-1]
	s.vOrder[pos] = last
	s.vPos[last] = pos
	s.vOrder = s.vOrder[:len(s.vOrder)-1]
	s.vPos[id] = -1
	s.vAlive[id] = false
	return nil
}

// HasVertex reports whether id names a live vertex.
func (s *Store) HasVertex(id int) bool {
	return id >= 0 && id < len(s.vAlive) && s.vAlive[id]
}

// VertexCount returns the number of live vertices.
func (s *Store) VertexCount() int { return len(s.vOrder) }

// VertexCapacity returns one more than the highest vertex id ever allocated.
func (s *Store) VertexCapacity() int { return len(s.vAlive) }

// Vertex returns the id of the vertex at position.
func (s *Store) Vertex(position int) int { return s.vOrder[position] }

// VertexNeighbourCount returns the number of distinct neighbours of v.
func (s *Store) VertexNeighbourCount(v int) int {
	if !s.HasVertex(v) {
		return 0
	}
	return len(s.nbrs[v])
}

// VertexNeighbour returns the neighbour of v at position.
func (s *Store) VertexNeighbour(v, position int) int { return s.nbrs[v][position] }

// =============================================================================
// Edges
// =============================================================================

// AddEdge adds a directed edge from src to dst and returns its id.
// Parallel edges and self loops are allowed.
func (s *Store) AddEdge(src, dst int) (int, error) {
	if !s.HasVertex(src) {
		return NotFound, fmt.Errorf("source %w: %d", ErrUnknownVertex, src)
	}
	if !s.HasVertex(dst) {
		return NotFound, fmt.Errorf("destination %w: %d", ErrUnknownVertex, dst)
	}
	id := len(s.edges)
	s.edges = append(s.edges, edge{src: src, dst: dst})
	s.eAlive = append(s.eAlive, true)
	s.ePos = append(s.ePos, len(s.eOrder))
	s.eOrder = append(s.eOrder, id)
	s.out[src] = append(s.out[src], id)
	s.in[dst] = append(s.in[dst], id)
	s.link(src, dst)
	for _, a := range s.attrs {
		if a.kind == Transaction {
			a.grow(len(s.edges))
		}
	}
	return id, nil
}

// RemoveEdge removes the edge with the given id.
func (s *Store) RemoveEdge(id int) error {
	if !s.HasEdge(id) {
		return fmt.Errorf("%w: %d", ErrUnknownEdge, id)
	}
	e := s.edges[id]
	s.out[e.src] = slices.DeleteFunc(s.out[e.src], func(x int) bool { return x == id })
	s.in[e.dst] = slices.DeleteFunc(s.in[e.dst], func(x int) bool { return x == id })

	pos := s.ePos[id]
	last := s.eOrder[len(s.eOrder)-1]
	s.eOrder[pos] = last
	s.ePos[last] = pos
	s.eOrder = s.eOrder[:len(s.eOrder)-1]
	s.ePos[id] = -1
	s.eAlive[id] = false

	s.relink(e.src)
	if e.dst != e.src {
		s.relink(e.dst)
	}
	return nil
}

// HasEdge reports whether id names a live edge.
func (s *Store) HasEdge(id int) bool {
	return id >= 0 && id < len(s.eAlive) && s.eAlive[id]
}

// EdgeCount returns the number of live edges.
func (s *Store) EdgeCount() int { return len(s.eOrder) }

// Edge returns the id of the edge at position.
func (s *Store) Edge(position int) int { return s.eOrder[position] }

// EdgeSourceVertex returns the source vertex of edge e.
func (s *Store) EdgeSourceVertex(e int) int { return s.edges[e].src }

// EdgeDestinationVertex returns the destination vertex of edge e.
func (s *Store) EdgeDestinationVertex(e int) int { return s.edges[e].dst }

// VertexEdgeCount returns the number of edges of v in direction dir.
func (s *Store) VertexEdgeCount(v int, dir Direction) int {
	if !s.HasVertex(v) {
		return 0
	}
	switch dir {
	case Outgoing:
		return len(s.out[v])
	case Incoming:
		return len(s.in[v])
	default:
		return len(s.out[v]) + len(s.in[v])
	}
}

// VertexEdge returns the edge of v in direction dir at position. Undirected
// positions enumerate outgoing edges first, then incoming ones.
func (s *Store) VertexEdge(v int, dir Direction, position int) int {
	switch dir {
	case Outgoing:
		return s.out[v][position]
	case Incoming:
		return s.in[v][position]
	default:
		if position < len(s.out[v]) {
			return s.out[v][position]
		}
		return s.in[v][position-len(s.out[v])]
	}
}

func (s *Store) link(a, b int) {
	if !slices.Contains(s.nbrs[a], b) {
		s.nbrs[a] = append(s.nbrs[a], b)
	}
	if a != b && !slices.Contains(s.nbrs[b], a) {
		s.nbrs[b] = append(s.nbrs[b], a)
	}
}

// relink rebuilds the neighbour list of v from its remaining edges.
func (s *Store) relink(v int) {
	s.nbrs[v] = s.nbrs[v][:0]
	for _, e := range s.out[v] {
		if dst := s.edges[e].dst; !slices.Contains(s.nbrs[v], dst) {
			s.nbrs[v] = append(s.nbrs[v], dst)
		}
	}
	for _, e := range s.in[v] {
		if src := s.edges[e].src; !slices.Contains(s.nbrs[v], src) {
			s.nbrs[v] = append(s.nbrs[v], src)
		}
	}
}

// =============================================================================
// Attributes
// =============================================================================

// AddAttribute registers a new attribute and returns its id. The default
// must match typ (float32, int or bool); nil selects the zero value.
func (s *Store) AddAttribute(kind ElementType, typ AttributeType, name string, def any) (int, error) {
	if name == "" {
		return NotFound, ErrInvalidAttributeName
	}
	if _, ok := s.byName[kind][name]; ok {
		return NotFound, fmt.Errorf("%w: %s %q", ErrDuplicateAttribute, kind, name)
	}
	a := &attribute{kind: kind, typ: typ, name: name}
	switch typ {
	case FloatAttribute:
		if def != nil {
			v, ok := def.(float32)
			if !ok {
				return NotFound, fmt.Errorf("attribute %q: default %T is not float32", name, def)
			}
			a.defF = v
		}
	case IntAttribute:
		if def != nil {
			v, ok := def.(int)
			if !ok {
				return NotFound, fmt.Errorf("attribute %q: default %T is not int", name, def)
			}
			a.defI = v
		}
	case BoolAttribute:
		if def != nil {
			v, ok := def.(bool)
			if !ok {
				return NotFound, fmt.Errorf("attribute %q: default %T is not bool", name, def)
			}
			a.defB = v
		}
	default:
		return NotFound, fmt.Errorf("attribute %q: unsupported type %d", name, typ)
	}
	if kind == Vertex {
		a.grow(len(s.vAlive))
	} else {
		a.grow(len(s.edges))
	}
	id := len(s.attrs)
	s.attrs = append(s.attrs, a)
	s.byName[kind][name] = id
	return id, nil
}

// EnsureFloatAttribute returns the id of the named float attribute, adding it
// with a zero default when missing.
func (s *Store) EnsureFloatAttribute(kind ElementType, name string) int {
	if id := s.Attribute(kind, name); id != NotFound {
		return id
	}
	id, _ := s.AddAttribute(kind, FloatAttribute, name, nil)
	return id
}

// Attribute returns the attribute id for name, or NotFound.
func (s *Store) Attribute(kind ElementType, name string) int {
	if id, ok := s.byName[kind][name]; ok {
		return id
	}
	return NotFound
}

// AttributeName returns the name of attribute attr.
func (s *Store) AttributeName(attr int) string { return s.attrs[attr].name }

// FloatValue returns the value of attr for element id. Int and bool
// attributes are converted; NotFound yields 0.
func (s *Store) FloatValue(attr, id int) float32 {
	if attr == NotFound {
		return 0
	}
	a := s.attrs[attr]
	switch a.typ {
	case IntAttribute:
		return float32(a.ints[id])
	case BoolAttribute:
		if a.bools[id] {
			return 1
		}
		return 0
	default:
		return a.floats[id]
	}
}

// IntValue returns the value of attr for element id. Float attributes are
// truncated; NotFound yields 0.
func (s *Store) IntValue(attr, id int) int {
	if attr == NotFound {
		return 0
	}
	a := s.attrs[attr]
	switch a.typ {
	case FloatAttribute:
		return int(a.floats[id])
	case BoolAttribute:
		if a.bools[id] {
			return 1
		}
		return 0
	default:
		return a.ints[id]
	}
}

// BoolValue returns the value of attr for element id. Numeric attributes are
// true when non-zero; NotFound yields false.
func (s *Store) BoolValue(attr, id int) bool {
	if attr == NotFound {
		return false
	}
	a := s.attrs[attr]
	switch a.typ {
	case FloatAttribute:
		return a.floats[id] != 0
	case IntAttribute:
		return a.ints[id] != 0
	default:
		return a.bools[id]
	}
}

// SetFloatValue sets the value of attr for element id. Writes to NotFound
// are ignored.
func (s *Store) SetFloatValue(attr, id int, value float32) {
	if attr == NotFound {
		return
	}
	a := s.attrs[attr]
	switch a.typ {
	case IntAttribute:
		a.ints[id] = int(value)
	case BoolAttribute:
		a.bools[id] = value != 0
	default:
		a.floats[id] = value
	}
}

// SetIntValue sets the value of an int attribute for element id.
func (s *Store) SetIntValue(attr, id, value int) {
	if attr == NotFound {
		return
	}
	a := s.attrs[attr]
	switch a.typ {
	case FloatAttribute:
		a.floats[id] = float32(value)
	case BoolAttribute:
		a.bools[id] = value != 0
	default:
		a.ints[id] = value
	}
}

// SetBoolValue sets the value of a bool attribute for element id.
func (s *Store) SetBoolValue(attr, id int, value bool) {
	if attr == NotFound {
		return
	}
	a := s.attrs[attr]
	var n int
	if value {
		n = 1
	}
	switch a.typ {
	case FloatAttribute:
		a.floats[id] = float32(n)
	case IntAttribute:
		a.ints[id] = n
	default:
		a.bools[id] = value
	}
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	c := &Store{
		vAlive: slices.Clone(s.vAlive),
		vOrder: slices.Clone(s.vOrder),
		vPos:   slices.Clone(s.vPos),
		edges:  slices.Clone(s.edges),
		eAlive: slices.Clone(s.eAlive),
		eOrder: slices.Clone(s.eOrder),
		ePos:   slices.Clone(s.ePos),
		out:    cloneLists(s.out),
		in:     cloneLists(s.in),
		nbrs:   cloneLists(s.nbrs),
		byName: map[ElementType]map[string]int{
			Vertex:      {},
			Transaction: {},
		},
	}
	for _, a := range s.attrs {
		cp := *a
		cp.floats = slices.Clone(a.floats)
		cp.ints = slices.Clone(a.ints)
		cp.bools = slices.Clone(a.bools)
		c.attrs = append(c.attrs, &cp)
	}
	for kind, names := range s.byName {
		for name, id := range names {
			c.byName[kind][name] = id
		}
	}
	return c
}

func cloneLists(src [][]int) [][]int {
	dst := make([][]int, len(src))
	for i, l := range src {
		dst[i] = slices.Clone(l)
	}
	return dst
}

// Ensure Store implements Writer.
var _ Writer = (*Store)(nil)
