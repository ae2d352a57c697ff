package jsoncache

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Parse decodes a JSON document into a Node. Object keys keep the order in
// which they appear in data; a repeated key keeps its first position and its
// last value.
func Parse(data []byte) (*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, excerpt(data))
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// ParseString is like Parse for a string document.
func ParseString(s string) (*Node, error) {
	return Parse([]byte(s))
}

// MustParse is like Parse but panics on invalid input. It is meant for
// literals in tests and examples.
func MustParse(s string) *Node {
	n, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return n
}

func fromResult(r gjson.Result) *Node {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(strings.TrimSpace(r.Raw))
	case gjson.String:
		return String(r.Str)
	}
	if r.IsArray() {
		n := Array()
		r.ForEach(func(_, v gjson.Result) bool {
			n.Append(fromResult(v))
			return true
		})
		return n
	}
	n := Object()
	r.ForEach(func(k, v gjson.Result) bool {
		n.Set(k.Str, fromResult(v))
		return true
	})
	return n
}

// FromValue converts a Go value into a Node. Nodes are cloned; scalars map to
// their JSON kinds; anything else goes through encoding/json, so maps get
// sorted keys and structs keep their field order.
func FromValue(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case Node:
		return x.Clone(), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		return Number(x.String()), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Number(strconv.FormatUint(uint64(x), 10)), nil
	case uint8:
		return Number(strconv.FormatUint(uint64(x), 10)), nil
	case uint16:
		return Number(strconv.FormatUint(uint64(x), 10)), nil
	case uint32:
		return Number(strconv.FormatUint(uint64(x), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(x, 10)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case json.RawMessage:
		return Parse(x)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return Parse(data)
}

func excerpt(data []byte) string {
	const limit = 32
	if len(data) > limit {
		return strconv.Quote(string(data[:limit])) + "..."
	}
	return strconv.Quote(string(data))
}
