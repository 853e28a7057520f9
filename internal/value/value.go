// Package value implements the tagged tree that every other package in this
// module exchanges: a JSON-equivalent in-memory representation with ordered
// maps and a numeric tag that keeps integers from being coerced into floats.
package value

import "fmt"

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSeq
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSeq:
		return "seq"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a tagged variant over {Null, Bool, Int64, Float64, String,
// Seq, Map}. Only the field matching Kind is meaningful.
type Value struct {
	Kind Kind

	Bool   bool
	Int    int64
	Float  float64
	String string
	Seq    []Value
	Map    *OrderedMap
}

// Null is the shared null value.
func Null() Value { return Value{Kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

// Float wraps a float.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Str wraps a string.
func Str(s string) Value { return Value{Kind: KindString, String: s} }

// SeqOf wraps a sequence of values.
func SeqOf(vs []Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{Kind: KindSeq, Seq: vs}
}

// MapOf wraps an ordered map.
func MapOf(m *OrderedMap) Value {
	if m == nil {
		m = NewOrderedMap()
	}
	return Value{Kind: KindMap, Map: m}
}

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Entry is a single ordered key/value pair of a Map.
type Entry struct {
	Key   string
	Value Value
}

// OrderedMap is a string-keyed map that preserves insertion order.
type OrderedMap struct {
	entries []Entry
	index   map[string]int
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{index: make(map[string]int)}
}

// Set inserts or replaces key, preserving the original position on replace.
func (m *OrderedMap) Set(key string, v Value) {
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = v
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

// Get returns the value for key and whether it was present.
func (m *OrderedMap) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.entries[i].Value, true
}

// Delete removes key, shifting no other entry's relative order.
func (m *OrderedMap) Delete(key string) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, key)
	for k, idx := range m.index {
		if idx > i {
			m.index[k] = idx - 1
		}
	}
	return true
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns the ordered key/value pairs. The caller must not mutate the
// returned slice's backing array.
func (m *OrderedMap) Entries() []Entry {
	if m == nil {
		return nil
	}
	return m.entries
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Clone returns a deep copy of m.
func (m *OrderedMap) Clone() *OrderedMap {
	out := NewOrderedMap()
	for _, e := range m.Entries() {
		out.Set(e.Key, e.Value.Clone())
	}
	return out
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.Kind {
	case KindSeq:
		seq := make([]Value, len(v.Seq))
		for i, e := range v.Seq {
			seq[i] = e.Clone()
		}
		return SeqOf(seq)
	case KindMap:
		return MapOf(v.Map.Clone())
	default:
		return v
	}
}

// Equal reports whether two values are structurally identical, including map
// order and numeric kind (Int(1) is not Equal to Float(1)).
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == o.Bool
	case KindInt:
		return v.Int == o.Int
	case KindFloat:
		return v.Float == o.Float
	case KindString:
		return v.String == o.String
	case KindSeq:
		if len(v.Seq) != len(o.Seq) {
			return false
		}
		for i := range v.Seq {
			if !v.Seq[i].Equal(o.Seq[i]) {
				return false
			}
		}
		return true
	case KindMap:
		a, b := v.Map.Entries(), o.Map.Entries()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i].Key != b[i].Key || !a[i].Value.Equal(b[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// GoString renders a debug form, useful in test failure messages.
func (v Value) GoString() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%v", v.Bool)
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindString:
		return fmt.Sprintf("%q", v.String)
	case KindSeq:
		return fmt.Sprintf("seq(%d)", len(v.Seq))
	case KindMap:
		return fmt.Sprintf("map(%d)", v.Map.Len())
	default:
		return "?"
	}
}
