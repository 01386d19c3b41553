package z0

import (
	"strconv"
	"strings"
)

// Kind discriminates the three disjoint shapes a Node can take.
type Kind int

const (
	KindUnset Kind = iota
	KindScalar
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unset"
	}
}

// ArrayKind refines an array Node once its first child is known.
type ArrayKind int

const (
	ArrayUnknown ArrayKind = iota
	ArrayValue
	ArrayDictionary
)

// Node is a single point in a Z0 tree: a scalar, an object, or an array.
// The zero value is KindUnset and becomes one of the other three the first
// time something is assigned through it.
type Node struct {
	kind   Kind
	scalar string

	objOrder    []string          // normalized keys, insertion order
	objOriginal map[string]string // normalized -> original-case key text
	objChildren map[string]*Node  // normalized key -> child

	arrKind     ArrayKind
	arrNext     int
	arrChildren map[string]*Node // decimal index string -> child
}

func newNode() *Node {
	return &Node{}
}

// Kind reports the node's current shape.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindUnset
	}
	return n.kind
}

// Scalar returns the node's value and whether it is a scalar at all.
func (n *Node) Scalar() (string, bool) {
	if n == nil || n.kind != KindScalar {
		return "", false
	}
	return n.scalar, true
}

// NormalizeKey applies Z0's case/separator-insensitive comparison rule
// (lower-cased, with '_' folded into '-') so other packages, the
// config reader's CLI/ENV matching in particular, can compare names
// against Z0 keys consistently.
func NormalizeKey(s string) string {
	return normalizeKey(s)
}

// normalizeKey applies the case/separator-insensitive comparison rule used
// throughout Z0: lower-cased, with '_' folded into '-'.
func normalizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", "-"))
}

func keysEqual(a, b string) bool {
	return normalizeKey(a) == normalizeKey(b)
}

func isNumericSegment(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Get returns the named child of an object node, or a non-nil-but-empty
// Node (Kind() == KindUnset) if absent or if n is not an object. This is
// the "null node" the format calls for: it is safe to chain further Get /
// Index calls off of it, and it is falsy under Present().
func (n *Node) Get(key string) *Node {
	if n == nil || n.kind != KindObject {
		return newNode()
	}
	child, ok := n.objChildren[normalizeKey(key)]
	if !ok {
		return newNode()
	}
	return child
}

// Index returns the array element at i (0-based), or the null node if n is
// not an array or i is out of range.
func (n *Node) Index(i int) *Node {
	if n == nil || n.kind != KindArray {
		return newNode()
	}
	child, ok := n.arrChildren[strconv.Itoa(i)]
	if !ok {
		return newNode()
	}
	return child
}

// Len returns the number of elements in an array node, or 0 otherwise.
func (n *Node) Len() int {
	if n == nil || n.kind != KindArray {
		return 0
	}
	return n.arrNext
}

// Elements returns an array node's children in index order. Non-array
// nodes yield nil.
func (n *Node) Elements() []*Node {
	if n == nil || n.kind != KindArray {
		return nil
	}
	out := make([]*Node, n.arrNext)
	for i := range out {
		if child, ok := n.arrChildren[strconv.Itoa(i)]; ok {
			out[i] = child
		} else {
			out[i] = newNode()
		}
	}
	return out
}

// Keys returns an object node's child names in first-seen order, using
// each key's original casing.
func (n *Node) Keys() []string {
	if n == nil || n.kind != KindObject {
		return nil
	}
	out := make([]string, len(n.objOrder))
	for i, normalized := range n.objOrder {
		out[i] = n.objOriginal[normalized]
	}
	return out
}

// ContainsKey reports whether an object node has the given child, using
// Z0's case/separator-insensitive key comparison.
func (n *Node) ContainsKey(key string) bool {
	if n == nil || n.kind != KindObject {
		return false
	}
	_, ok := n.objChildren[normalizeKey(key)]
	return ok
}

// Present reports the Z0 truthiness of a node: it exists and is not the
// null node produced by a missing lookup.
func (n *Node) Present() bool {
	return n != nil && n.kind != KindUnset
}

// Optional returns the node's scalar value, or def if the node is missing
// or not a scalar.
func (n *Node) Optional(def string) string {
	if v, ok := n.Scalar(); ok {
		return v
	}
	return def
}

func (n *Node) objGetOrCreate(key string) *Node {
	norm := normalizeKey(key)
	if n.objChildren == nil {
		n.objChildren = map[string]*Node{}
		n.objOriginal = map[string]string{}
	}
	if child, ok := n.objChildren[norm]; ok {
		return child
	}
	child := newNode()
	n.objChildren[norm] = child
	n.objOriginal[norm] = key
	n.objOrder = append(n.objOrder, norm)
	return child
}

func (n *Node) arrAppend() *Node {
	if n.arrChildren == nil {
		n.arrChildren = map[string]*Node{}
	}
	idx := strconv.Itoa(n.arrNext)
	n.arrNext++
	child := newNode()
	n.arrChildren[idx] = child
	return child
}

func (n *Node) arrGet(key string) (*Node, bool) {
	child, ok := n.arrChildren[key]
	return child, ok
}
