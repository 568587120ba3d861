package cache

import "fmt"

// ArrangeKeyOpts are the options that change the result of a cached step.
type ArrangeKeyOpts struct {
	Step        string  `json:"step"`
	MinDistance float64 `json:"min_distance,omitempty"`
	// Subset is a hash of the vertex subset the step ran on, empty for all
	// vertices.
	Subset string `json:"subset,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ArrangeKey returns the key for an arrangement step applied to the graph
	// whose snapshot hashes to graphHash.
	ArrangeKey(graphHash string, opts ArrangeKeyOpts) string
}

// DefaultKeyer produces keys of the form "arrange:<step>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArrangeKey implements Keyer.
func (DefaultKeyer) ArrangeKey(graphHash string, opts ArrangeKeyOpts) string {
	return hashKey(fmt.Sprintf("arrange:%s", opts.Step), graphHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
