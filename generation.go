package jsoncache

import "io"

const (
	singlePrefix   = "{$"
	doublePrefix   = "{$$"
	placeholderEnd = "}"
)

// Placeholder returns the token replaced by the single-escaped value at path.
func Placeholder(path string) string {
	return singlePrefix + path + placeholderEnd
}

// DoublePlaceholder returns the token replaced by the double-escaped value at
// path.
func DoublePlaceholder(path string) string {
	return doublePrefix + path + placeholderEnd
}

// generation is everything derived from one state of the document. It is
// built in one go and never modified afterwards, so a replace can keep using
// it while a mutation installs the next one.
type generation struct {
	single  *Serialized
	double  *Serialized
	matcher *automaton
	// replacements[i] is the value for pattern i; every entry slices one of
	// the two buffers above.
	replacements [][]byte
}

func buildGeneration(root *Node) (*generation, error) {
	single, double := Serialize(root, true)

	n := len(single.Paths) + len(double.Paths)
	patterns := make([][]byte, 0, n)
	replacements := make([][]byte, 0, n)
	for _, p := range single.Paths {
		r := single.Ranges[p]
		patterns = append(patterns, []byte(Placeholder(p)))
		replacements = append(replacements, single.Buffer[r.Start:r.End:r.End])
	}
	for _, p := range double.Paths {
		r := double.Ranges[p]
		patterns = append(patterns, []byte(DoublePlaceholder(p)))
		replacements = append(replacements, double.Buffer[r.Start:r.End:r.End])
	}

	matcher, err := buildAutomaton(patterns)
	if err != nil {
		return nil, err
	}
	return &generation{
		single:       single,
		double:       double,
		matcher:      matcher,
		replacements: replacements,
	}, nil
}

func (g *generation) replace(r io.Reader, w io.Writer, chunk int) error {
	return g.matcher.replaceAll(r, w, g.replacements, chunk)
}

func (g *generation) raw(path string, double bool) ([]byte, bool) {
	if double {
		return g.double.Slice(path)
	}
	return g.single.Slice(path)
}
