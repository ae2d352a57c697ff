package jsoncache

import (
	"strconv"
	"strings"
)

// PathSeparator separates the segments of a cache path.
const PathSeparator = "."

// JoinPath joins literal segments into a cache path. Segments are not escaped:
// a key containing a dot addresses the same place as the nested keys it spells.
func JoinPath(segments ...string) string {
	return strings.Join(segments, PathSeparator)
}

func splitPath(path string) []string {
	return strings.Split(path, PathSeparator)
}

// EscapePointerToken escapes the characters that have special meaning inside a
// JSON Pointer token ('~' and '/') so the token is read back verbatim.
func EscapePointerToken(seg string) string {
	needsEscape := false
	for i := 0; i < len(seg); i++ {
		if seg[i] == '~' || seg[i] == '/' {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return seg
	}

	var b strings.Builder
	b.Grow(len(seg) + 4)
	for i := 0; i < len(seg); i++ {
		switch c := seg[i]; c {
		case '~':
			b.WriteString("~0")
		case '/':
			b.WriteString("~1")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// PathToPointer rewrites a dotted cache path as a JSON Pointer.
// Example: PathToPointer("a.my_arr.0") -> "/a/my_arr/0".
func PathToPointer(path string) string {
	segs := splitPath(path)
	var b strings.Builder
	b.Grow(len(path) + 1)
	for _, s := range segs {
		b.WriteByte('/')
		b.WriteString(EscapePointerToken(s))
	}
	return b.String()
}

func unescapePointerToken(tok string) string {
	if !strings.Contains(tok, "~") {
		return tok
	}
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(tok)
}

// resolvePointer walks ptr from root. The empty pointer addresses root itself.
func resolvePointer(root *Node, ptr string) (*Node, bool) {
	if ptr == "" {
		return root, true
	}
	if ptr[0] != '/' {
		return nil, false
	}
	cur := root
	for _, tok := range strings.Split(ptr[1:], "/") {
		tok = unescapePointerToken(tok)
		switch cur.Kind() {
		case KindObject:
			next := cur.Field(tok)
			if next == nil {
				return nil, false
			}
			cur = next
		case KindArray:
			i, ok := parseIndex(tok)
			if !ok {
				return nil, false
			}
			next := cur.Index(i)
			if next == nil {
				return nil, false
			}
			cur = next
		default:
			return nil, false
		}
	}
	return cur, true
}

// parseIndex accepts only canonical non-negative decimal indices: no sign and
// no leading zero.
func parseIndex(tok string) (int, bool) {
	if tok == "" || tok[0] == '+' || (tok[0] == '0' && len(tok) > 1) {
		return 0, false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return i, true
}
