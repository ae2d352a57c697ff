package jsoncache

import (
	"fmt"
	"math"
	"sort"
)

const rootState int32 = 0

// automaton is an Aho-Corasick matcher over a fixed set of byte patterns.
//
// The root row is dense so the common "no match in progress" step is a single
// load; deeper states keep sorted sparse edges and fall back through failure
// links.
type automaton struct {
	states   []acState
	root     [256]int32
	patterns int
}

type acState struct {
	edges []acEdge
	fail  int32
	// dict is the nearest state on the failure chain that ends a pattern, or -1.
	dict int32
	// out is the pattern ending at this state, or -1. With duplicate patterns
	// the first registered one is kept.
	out   int32
	depth int32
}

type acEdge struct {
	b  byte
	to int32
}

func (s *acState) edge(b byte) (int32, bool) {
	i := sort.Search(len(s.edges), func(i int) bool { return s.edges[i].b >= b })
	if i < len(s.edges) && s.edges[i].b == b {
		return s.edges[i].to, true
	}
	return 0, false
}

func (s *acState) addEdge(b byte, to int32) {
	i := sort.Search(len(s.edges), func(i int) bool { return s.edges[i].b >= b })
	s.edges = append(s.edges, acEdge{})
	copy(s.edges[i+1:], s.edges[i:])
	s.edges[i] = acEdge{b: b, to: to}
}

// buildAutomaton compiles patterns into one matcher. Pattern ids are their
// positions in the slice; lower ids win ties between matches starting at the
// same offset.
func buildAutomaton(patterns [][]byte) (*automaton, error) {
	a := &automaton{
		states:   []acState{{fail: rootState, dict: -1, out: -1}},
		patterns: len(patterns),
	}
	for id, p := range patterns {
		if len(p) == 0 {
			return nil, fmt.Errorf("%w: empty pattern %d", ErrMatcherBuild, id)
		}
		cur := rootState
		for _, b := range p {
			next, ok := a.states[cur].edge(b)
			if !ok {
				if len(a.states) >= math.MaxInt32 {
					return nil, fmt.Errorf("%w: too many states", ErrMatcherBuild)
				}
				next = int32(len(a.states))
				a.states = append(a.states, acState{
					dict:  -1,
					out:   -1,
					depth: a.states[cur].depth + 1,
				})
				a.states[cur].addEdge(b, next)
			}
			cur = next
		}
		if a.states[cur].out < 0 {
			a.states[cur].out = int32(id)
		}
	}

	for _, e := range a.states[rootState].edges {
		a.root[e.b] = e.to
	}

	// Breadth first, so every failure target is complete before it is used.
	queue := make([]int32, 0, len(a.states))
	for _, e := range a.states[rootState].edges {
		a.states[e.to].fail = rootState
		queue = append(queue, e.to)
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range a.states[u].edges {
			v := e.to
			f := a.next(a.states[u].fail, e.b)
			a.states[v].fail = f
			if a.states[f].out >= 0 {
				a.states[v].dict = f
			} else {
				a.states[v].dict = a.states[f].dict
			}
			queue = append(queue, v)
		}
	}
	return a, nil
}

// next returns the state reached from state on input b.
func (a *automaton) next(state int32, b byte) int32 {
	for {
		if state == rootState {
			return a.root[b]
		}
		if to, ok := a.states[state].edge(b); ok {
			return to
		}
		state = a.states[state].fail
	}
}

// firstOut returns the first state on the output chain of state, or -1.
func (a *automaton) firstOut(state int32) int32 {
	if a.states[state].out >= 0 {
		return state
	}
	return a.states[state].dict
}
