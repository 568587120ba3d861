package graph

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// NotFound is returned by [Reader.Attribute] when no attribute with the
// requested name exists. Algorithms treat it as "use the documented default",
// never as an error. The value is shared with external callers and must not
// be renumbered.
const NotFound = -1

// ElementType selects the element kind an attribute is attached to.
type ElementType int

const (
	// Vertex attributes are indexed by vertex id.
	Vertex ElementType = iota
	// Transaction attributes are indexed by edge id.
	Transaction
)

// String returns the lowercase element kind name.
func (k ElementType) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Transaction:
		return "transaction"
	default:
		return "unknown"
	}
}

// Direction selects which incident edges of a vertex are enumerated.
type Direction int

const (
	// Outgoing edges have the vertex as their source.
	Outgoing Direction = iota
	// Incoming edges have the vertex as their destination.
	Incoming
	// Undirected enumerates every incident edge regardless of direction.
	Undirected
)

// AttributeType is the storage type of an attribute.
type AttributeType int

const (
	FloatAttribute AttributeType = iota
	IntAttribute
	BoolAttribute
)

// Visual vertex attribute names consumed by the arrangement algorithms.
const (
	AttrX           = "x"
	AttrY           = "y"
	AttrZ           = "z"
	AttrX2          = "x2"
	AttrY2          = "y2"
	AttrZ2          = "z2"
	AttrLabelRadius = "lradius"
)

// =============================================================================
// Accessor Capabilities
// =============================================================================

// Reader is the read-only graph capability consumed by the arrangement
// algorithms. Vertex and edge ids are stable integers below the respective
// capacity; positions enumerate the live elements densely from 0.
type Reader interface {
	VertexCount() int
	VertexCapacity() int
	// Vertex returns the id of the vertex at the given position.
	Vertex(position int) int

	// Attribute returns the attribute id for name, or NotFound.
	Attribute(kind ElementType, name string) int
	FloatValue(attr, id int) float32
	IntValue(attr, id int) int
	BoolValue(attr, id int) bool

	// VertexNeighbourCount counts distinct vertices sharing an edge with v,
	// ignoring direction.
	VertexNeighbourCount(v int) int
	VertexNeighbour(v, position int) int

	EdgeCount() int
	Edge(position int) int
	VertexEdgeCount(v int, dir Direction) int
	VertexEdge(v int, dir Direction, position int) int
	EdgeSourceVertex(e int) int
	EdgeDestinationVertex(e int) int
}

// Writer extends Reader with the mutators the arrangement algorithms need.
type Writer interface {
	Reader
	SetFloatValue(attr, id int, value float32)
}
