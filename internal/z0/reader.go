package z0

import "github.com/gitlive/gitlive/internal/errors"

// Reader is a tolerant read-side wrapper around a Node tree. It never
// panics on a missing or wrongly-shaped path; every accessor either
// returns a default or a descriptive error, so callers can chain lookups
// fluently (Reader.Get(...).Get(...).Optional(...)) without nil checks.
type Reader struct {
	node *Node
}

// NewReader wraps a root node for reading.
func NewReader(root *Node) Reader {
	return Reader{node: root}
}

// Get returns a Reader over the named child of an object node. Missing or
// mis-shaped lookups yield a Reader wrapping the null node, which is
// itself safe to keep chaining off of.
func (r Reader) Get(key string) Reader {
	return Reader{node: r.node.Get(key)}
}

// Index returns a Reader over the i-th array element.
func (r Reader) Index(i int) Reader {
	return Reader{node: r.node.Index(i)}
}

// Present reports whether the wrapped node actually exists.
func (r Reader) Present() bool {
	return r.node.Present()
}

// ContainsKey reports whether the wrapped object node has the given child.
func (r Reader) ContainsKey(key string) bool {
	return r.node.ContainsKey(key)
}

// Optional returns the wrapped node's scalar value, or def if it is
// missing or not a scalar.
func (r Reader) Optional(def string) string {
	return r.node.Optional(def)
}

// Required returns the wrapped node's scalar value, or an error if it is
// missing or not a scalar.
func (r Reader) Required() (string, error) {
	if v, ok := r.node.Scalar(); ok {
		return v, nil
	}
	return "", errors.Errorf("required Z0 value is missing or not a scalar")
}

// Array returns a Reader for each element of the wrapped array node, in
// order. A non-array node yields an empty slice.
func (r Reader) Array() []Reader {
	elements := r.node.Elements()
	out := make([]Reader, len(elements))
	for i, el := range elements {
		out[i] = Reader{node: el}
	}
	return out
}

// Node returns the underlying Node, for callers that need the lower-level
// shape inspection Node.Kind offers.
func (r Reader) Node() *Node {
	return r.node
}
