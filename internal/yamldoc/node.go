// Package yamldoc models configuration documents as trees of typed nodes
// (scalars, compact and expansive lists, ordered mappings) and serializes
// them to YAML with per-node rendering styles. Mappings keep insertion
// order on output, so emitted documents read in the order they were built.
package yamldoc

import "sort"

// Node is one element of a document tree.
type Node interface {
	node()
}

// Scalar is a leaf value: string, bool, int, float64, or nil.
// Quoted forces double quotes on output even when quoting is optional,
// which keeps version ranges and namespace specifiers unambiguous for
// downstream parsers.
type Scalar struct {
	Value  any
	Quoted bool
}

// List is a sequence of nodes. Compact lists render inline ([a, b]);
// others render one entry per line.
type List struct {
	Items   []Node
	Compact bool
}

// Mapping is a key/value collection that preserves insertion order.
type Mapping struct {
	keys   []string
	values map[string]Node
}

func (*Scalar) node()  {}
func (*List) node()    {}
func (*Mapping) node() {}

// Str returns a plain string scalar.
func Str(s string) *Scalar { return &Scalar{Value: s} }

// Quoted returns a double-quoted string scalar.
func Quoted(s string) *Scalar { return &Scalar{Value: s, Quoted: true} }

// Int returns an integer scalar.
func Int(i int) *Scalar { return &Scalar{Value: i} }

// Bool returns a boolean scalar.
func Bool(b bool) *Scalar { return &Scalar{Value: b} }

// Null returns a null scalar.
func Null() *Scalar { return &Scalar{Value: nil} }

// Compact returns an inline-rendered list.
func Compact(items ...Node) *List { return &List{Items: items, Compact: true} }

// Block returns a one-entry-per-line list.
func Block(items ...Node) *List { return &List{Items: items} }

// CompactStrings returns an inline list of plain string scalars.
func CompactStrings(ss ...string) *List {
	items := make([]Node, len(ss))
	for i, s := range ss {
		items[i] = Str(s)
	}
	return Compact(items...)
}

// QuotedCompactStrings returns an inline list of double-quoted string scalars.
func QuotedCompactStrings(ss ...string) *List {
	items := make([]Node, len(ss))
	for i, s := range ss {
		items[i] = Quoted(s)
	}
	return Compact(items...)
}

// NewMapping returns an empty ordered mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Node)}
}

// Set inserts a key or replaces the value of an existing key in place.
// A replaced key keeps its original position, so later writers can
// override earlier values without disturbing document order.
func (m *Mapping) Set(key string, v Node) *Mapping {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
	return m
}

// Get returns the value for key and whether it is present.
func (m *Mapping) Get(key string) (Node, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Mapping) Len() int { return len(m.keys) }

// FromValue converts a decoded JSON value (scalar, []any, map[string]any)
// into a node tree. Lists render in block style; map keys are sorted so
// the output stays deterministic regardless of Go map iteration order.
func FromValue(v any) Node {
	switch t := v.(type) {
	case nil:
		return Null()
	case []any:
		items := make([]Node, len(t))
		for i, item := range t {
			items[i] = FromValue(item)
		}
		return Block(items...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			m.Set(k, FromValue(t[k]))
		}
		return m
	default:
		return &Scalar{Value: v}
	}
}
