package jsoncache

import (
	"sort"
	"strconv"
)

// StringMap flattens the document below root into path -> text pairs.
// Strings map to their raw value, other scalars to their literal and
// containers to their compact JSON.
//
// The root is left out when it is an object but included under "" when it is
// an array or a scalar.
func StringMap(root *Node) map[string]string {
	m := map[string]string{}
	stringMapInto(m, root, "")
	return m
}

func stringMapInto(m map[string]string, n *Node, path string) {
	prefix := path
	if prefix != "" {
		prefix += PathSeparator
	}
	switch n.Kind() {
	case KindArray:
		for i, v := range n.values {
			stringMapInto(m, v, prefix+strconv.Itoa(i))
		}
		m[path] = n.String()
	case KindObject:
		for i, k := range n.keys {
			stringMapInto(m, n.values[i], prefix+k)
		}
		if path != "" {
			m[path] = n.String()
		}
	case KindString, KindNumber:
		m[path] = n.text
	case KindBool:
		if n.b {
			m[path] = constTrue
		} else {
			m[path] = constFalse
		}
	default:
		m[path] = constNull
	}
}

// AsStringMap returns StringMap of the whole document.
func (c *DataCache) AsStringMap() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return StringMap(c.tree.Root())
}

// String renders AsStringMap as one compact JSON object with sorted keys.
func (c *DataCache) String() string {
	return string(appendStringMap(nil, c.AsStringMap()))
}

func appendStringMap(dst []byte, m map[string]string) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dst = append(dst, '{')
	for i, k := range keys {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendQuoted(dst, k)
		dst = append(dst, ':')
		dst = appendQuoted(dst, m[k])
	}
	return append(dst, '}')
}
