package arrange

import (
	"cmp"
	"maps"
	"slices"
)

// Taxonomy is the result of a component decomposition: a set of disjoint
// taxa keyed by seed vertex id or by one of the reserved bucket keys, plus
// the reverse vertex to taxon index.
//
// The singleton and doublet buckets are always present, possibly empty.
type Taxonomy struct {
	taxa     map[int][]int
	byVertex map[int]int
}

func newTaxonomy() *Taxonomy {
	return &Taxonomy{
		taxa: map[int][]int{
			SingletonKey: {},
			DoubletKey:   {},
		},
		byVertex: make(map[int]int),
	}
}

func (t *Taxonomy) add(key int, members []int) {
	t.taxa[key] = append(t.taxa[key], members...)
	for _, v := range members {
		t.byVertex[v] = key
	}
}

func (t *Taxonomy) sortMembers() {
	for _, members := range t.taxa {
		slices.Sort(members)
	}
}

// Len returns the number of taxa, counting both buckets.
func (t *Taxonomy) Len() int { return len(t.taxa) }

// VertexCount returns the number of classified vertices.
func (t *Taxonomy) VertexCount() int { return len(t.byVertex) }

// Taxon returns the members of the taxon with the given key in ascending
// order, or nil when no such taxon exists. The slice must not be modified.
func (t *Taxonomy) Taxon(key int) []int { return t.taxa[key] }

// TaxonOf returns the key of the taxon containing v.
func (t *Taxonomy) TaxonOf(v int) (int, bool) {
	key, ok := t.byVertex[v]
	return key, ok
}

// Singletons returns the vertices without neighbours.
func (t *Taxonomy) Singletons() []int { return t.taxa[SingletonKey] }

// Doublets returns the vertices of all two-vertex components.
func (t *Taxonomy) Doublets() []int { return t.taxa[DoubletKey] }

// Map returns a copy of the key to members mapping.
func (t *Taxonomy) Map() map[int][]int {
	out := make(map[int][]int, len(t.taxa))
	for k, members := range t.taxa {
		out[k] = slices.Clone(members)
	}
	return out
}

// SortedKeys returns the taxon keys for presentation: the singleton bucket
// first, the doublet bucket second, then the remaining taxa by ascending size
// with ties broken by key.
func (t *Taxonomy) SortedKeys() []int {
	keys := slices.Collect(maps.Keys(t.taxa))
	slices.SortFunc(keys, func(a, b int) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return cmp.Compare(ra, rb)
		}
		if c := cmp.Compare(len(t.taxa[a]), len(t.taxa[b])); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return keys
}

func rank(key int) int {
	switch key {
	case SingletonKey:
		return 0
	case DoubletKey:
		return 1
	default:
		return 2
	}
}
