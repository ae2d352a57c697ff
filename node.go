package jsoncache

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind identifies the JSON type held by a Node.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return constNull
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

const (
	constNull  = "null"
	constTrue  = "true"
	constFalse = "false"
)

// Node is one value of a JSON document. Objects remember the order in which
// their keys were first set.
//
// A nil *Node reads as JSON null.
type Node struct {
	kind Kind
	b    bool
	// text holds the literal of a number or the decoded value of a string.
	text   string
	keys   []string
	values []*Node
	pos    map[string]int
}

// Null returns a new null node.
func Null() *Node { return &Node{kind: KindNull} }

// Bool returns a new boolean node.
func Bool(b bool) *Node { return &Node{kind: KindBool, b: b} }

// Number returns a number node holding the literal text as written, e.g. "12.5".
// The text is not validated.
func Number(text string) *Node { return &Node{kind: KindNumber, text: text} }

// Int returns a number node for i.
func Int(i int64) *Node { return Number(strconv.FormatInt(i, 10)) }

// Float returns a number node for f. NaN and infinities have no JSON form and
// become null.
func Float(f float64) *Node {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	b, err := json.Marshal(f)
	if err != nil {
		return Null()
	}
	return Number(string(b))
}

// String returns a new string node.
func String(s string) *Node { return &Node{kind: KindString, text: s} }

// Array returns a new array node holding elems.
func Array(elems ...*Node) *Node {
	n := &Node{kind: KindArray, values: make([]*Node, 0, len(elems))}
	for _, e := range elems {
		n.values = append(n.values, orNull(e))
	}
	return n
}

// Object returns a new empty object node.
func Object() *Node {
	return &Node{kind: KindObject, pos: map[string]int{}}
}

func orNull(n *Node) *Node {
	if n == nil {
		return Null()
	}
	return n
}

// Kind reports the JSON type of n.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

func (n *Node) IsObject() bool { return n.Kind() == KindObject }
func (n *Node) IsArray() bool  { return n.Kind() == KindArray }
func (n *Node) IsNull() bool   { return n.Kind() == KindNull }

// BoolValue returns the value of a boolean node and false for any other kind.
func (n *Node) BoolValue() bool {
	return n.Kind() == KindBool && n.b
}

// Text returns the decoded value of a string node or the literal of a number node.
// Other kinds return "".
func (n *Node) Text() string {
	switch n.Kind() {
	case KindString, KindNumber:
		return n.text
	}
	return ""
}

// Len returns the number of elements of an array or fields of an object.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindArray, KindObject:
		return len(n.values)
	}
	return 0
}

// Index returns the i-th element of an array, or nil.
func (n *Node) Index(i int) *Node {
	if n.Kind() != KindArray || i < 0 || i >= len(n.values) {
		return nil
	}
	return n.values[i]
}

// Field returns the value stored under key in an object, or nil.
func (n *Node) Field(key string) *Node {
	if n.Kind() != KindObject {
		return nil
	}
	i, ok := n.pos[key]
	if !ok {
		return nil
	}
	return n.values[i]
}

// Keys returns the keys of an object in insertion order.
func (n *Node) Keys() []string {
	if n.Kind() != KindObject {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Elements returns the elements of an array.
func (n *Node) Elements() []*Node {
	if n.Kind() != KindArray {
		return nil
	}
	return append([]*Node(nil), n.values...)
}

// Set stores v under key. An existing key keeps its position. Set on a
// non-object is a no-op. It returns n so calls can be chained.
func (n *Node) Set(key string, v *Node) *Node {
	if n.Kind() != KindObject {
		return n
	}
	v = orNull(v)
	if i, ok := n.pos[key]; ok {
		n.values[i] = v
		return n
	}
	n.pos[key] = len(n.keys)
	n.keys = append(n.keys, key)
	n.values = append(n.values, v)
	return n
}

// Delete removes key from an object and reports whether it was present.
func (n *Node) Delete(key string) bool {
	if n.Kind() != KindObject {
		return false
	}
	i, ok := n.pos[key]
	if !ok {
		return false
	}
	delete(n.pos, key)
	n.keys = append(n.keys[:i], n.keys[i+1:]...)
	n.values = append(n.values[:i], n.values[i+1:]...)
	for j := i; j < len(n.keys); j++ {
		n.pos[n.keys[j]] = j
	}
	return true
}

// Append adds v at the end of an array. Append on a non-array is a no-op.
func (n *Node) Append(v *Node) *Node {
	if n.Kind() != KindArray {
		return n
	}
	n.values = append(n.values, orNull(v))
	return n
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return Null()
	}
	c := &Node{kind: n.kind, b: n.b, text: n.text}
	switch n.kind {
	case KindArray:
		c.values = make([]*Node, len(n.values))
		for i, v := range n.values {
			c.values[i] = v.Clone()
		}
	case KindObject:
		c.keys = append([]string(nil), n.keys...)
		c.values = make([]*Node, len(n.values))
		c.pos = make(map[string]int, len(n.keys))
		for i, v := range n.values {
			c.values[i] = v.Clone()
			c.pos[c.keys[i]] = i
		}
	}
	return c
}

// Equal reports whether n and o hold the same JSON value. Object key order is
// not significant; numbers compare by their literal text.
func (n *Node) Equal(o *Node) bool {
	if n.Kind() != o.Kind() {
		return false
	}
	switch n.Kind() {
	case KindNull:
		return true
	case KindBool:
		return n.b == o.b
	case KindNumber, KindString:
		return n.text == o.text
	case KindArray:
		if len(n.values) != len(o.values) {
			return false
		}
		for i := range n.values {
			if !n.values[i].Equal(o.values[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(n.keys) != len(o.keys) {
			return false
		}
		for i, k := range n.keys {
			ov := o.Field(k)
			if ov == nil || !n.values[i].Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// AppendJSON appends the compact JSON encoding of n to dst.
func (n *Node) AppendJSON(dst []byte) []byte {
	switch n.Kind() {
	case KindNull:
		return append(dst, constNull...)
	case KindBool:
		if n.b {
			return append(dst, constTrue...)
		}
		return append(dst, constFalse...)
	case KindNumber:
		return append(dst, n.text...)
	case KindString:
		return appendQuoted(dst, n.text)
	case KindArray:
		dst = append(dst, '[')
		for i, v := range n.values {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = v.AppendJSON(dst)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		for i, k := range n.keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendQuoted(dst, k)
			dst = append(dst, ':')
			dst = n.values[i].AppendJSON(dst)
		}
		return append(dst, '}')
	}
	return dst
}

// String returns the compact JSON encoding of n.
func (n *Node) String() string {
	return string(n.AppendJSON(nil))
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return n.AppendJSON(nil), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	p, err := Parse(data)
	if err != nil {
		return err
	}
	*n = *p
	return nil
}
