package jsoncache

import (
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
)

// ByteRange is the half-open span [Start, End) of one value inside a
// serialized buffer.
type ByteRange struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by r.
func (r ByteRange) Len() int { return r.End - r.Start }

// Serialized is a compact JSON encoding of a document together with the
// location of every value reachable from its root.
//
// For string values the range excludes the surrounding quotes; for every other
// kind, containers included, it covers the whole encoded value. The root
// itself is never indexed.
type Serialized struct {
	Buffer []byte
	Ranges map[string]ByteRange
	// Paths lists the keys of Ranges in the order they were recorded.
	Paths []string
}

// Slice returns the bytes recorded for path. The slice aliases Buffer.
func (s *Serialized) Slice(path string) ([]byte, bool) {
	r, ok := s.Ranges[path]
	if !ok {
		return nil, false
	}
	return s.Buffer[r.Start:r.End:r.End], true
}

func (s *Serialized) put(path string, r ByteRange) {
	if _, ok := s.Ranges[path]; !ok {
		s.Paths = append(s.Paths, path)
	}
	s.Ranges[path] = r
}

func newSerialized() *Serialized {
	return &Serialized{Ranges: map[string]ByteRange{}}
}

// Serialize flattens root into its compact JSON encoding and indexes every
// value below the root by its dotted path.
//
// When double is set it also produces the double-escaped form: the compact
// encoding written as the contents of a JSON string literal, without the
// literal's own outer quotes. In that buffer a string value is delimited by
// \" on both sides, so its range excludes two bytes on each side.
//
// Serialize holds no state; the same document always yields identical output.
func Serialize(root *Node, double bool) (*Serialized, *Serialized) {
	s := &serializer{single: newSerialized()}
	if double {
		s.double = newSerialized()
	}
	s.value(root)
	return s.single, s.double
}

type serializer struct {
	single *Serialized
	double *Serialized
	path   []byte
}

func (s *serializer) value(n *Node) {
	switch n.Kind() {
	case KindNull:
		s.raw(constNull)
	case KindBool:
		if n.b {
			s.raw(constTrue)
		} else {
			s.raw(constFalse)
		}
	case KindNumber:
		s.raw(n.text)
	case KindString:
		s.quoted(n.text)
	case KindArray:
		s.raw("[")
		for i, v := range n.values {
			if i > 0 {
				s.raw(",")
			}
			mark := s.push(strconv.Itoa(i))
			s.child(v)
			s.path = s.path[:mark]
		}
		s.raw("]")
	case KindObject:
		s.raw("{")
		for i, k := range n.keys {
			if i > 0 {
				s.raw(",")
			}
			s.quoted(k)
			s.raw(":")
			mark := s.push(k)
			s.child(n.values[i])
			s.path = s.path[:mark]
		}
		s.raw("}")
	}
}

// child writes one member value and records its ranges under the current path.
// Each buffer is measured against its own cursor since escaping grows the
// double buffer faster than the single one.
func (s *serializer) child(n *Node) {
	single := ByteRange{Start: len(s.single.Buffer)}
	var double ByteRange
	if s.double != nil {
		double.Start = len(s.double.Buffer)
	}

	s.value(n)

	single.End = len(s.single.Buffer)
	if s.double != nil {
		double.End = len(s.double.Buffer)
	}
	if n.Kind() == KindString {
		single.Start++
		single.End--
		double.Start += 2
		double.End -= 2
	}

	path := string(s.path[1:])
	s.single.put(path, single)
	if s.double != nil {
		s.double.put(path, double)
	}
}

// push appends seg to the current path and returns the length to truncate
// back to. The path is kept with a leading separator so that an empty key
// still adds a segment.
func (s *serializer) push(seg string) int {
	mark := len(s.path)
	s.path = append(s.path, PathSeparator...)
	s.path = append(s.path, seg...)
	return mark
}

// raw writes text that reads the same in both buffers.
func (s *serializer) raw(text string) {
	s.single.Buffer = append(s.single.Buffer, text...)
	if s.double != nil {
		s.double.Buffer = append(s.double.Buffer, text...)
	}
}

func (s *serializer) quoted(str string) {
	start := len(s.single.Buffer)
	s.single.Buffer = appendQuoted(s.single.Buffer, str)
	if s.double != nil {
		s.double.Buffer = appendRequoted(s.double.Buffer, s.single.Buffer[start:])
	}
}

// appendQuoted appends str as a JSON string literal using the minimal escaping
// of RFC 8785.
func appendQuoted(dst []byte, str string) []byte {
	// Invalid UTF-8 is replaced by U+FFFD and reported as an error; the
	// output is complete either way.
	out, _ := jsontext.AppendQuote(dst, str)
	return out
}

// appendRequoted appends the escaped form of an already quoted literal, as it
// would read inside another string literal, without the outer quotes.
func appendRequoted(dst, quoted []byte) []byte {
	n := len(dst)
	out, _ := jsontext.AppendQuote(dst, quoted)
	copy(out[n:], out[n+1:])
	return out[:len(out)-2]
}
