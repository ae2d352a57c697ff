package jsoncache

import (
	"bufio"
	"fmt"
	"io"
)

// DefaultChunkSize is the read size used when streaming substitutions.
const DefaultChunkSize = 32 * 1024

type candidate struct {
	start, end int
	id         int32
}

// replaceAll copies r to w, replacing every match of pattern i by repl[i].
//
// Matching is leftmost-first: the match starting earliest wins, ties go to
// the lowest pattern id, and scanning resumes right after the replaced span.
// Only the bytes that may still begin a match are held back between reads.
func (a *automaton) replaceAll(r io.Reader, w io.Writer, repl [][]byte, chunk int) error {
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	bw := bufio.NewWriterSize(w, chunk)
	buf := make([]byte, 0, 2*chunk)

	var (
		lo, pos int // buf[lo:] is not yet written; buf[:pos] has been scanned
		state   = rootState
		best    = candidate{id: -1}
		eof     bool
	)

	commit := func() error {
		if _, err := bw.Write(buf[lo:best.start]); err != nil {
			return err
		}
		if _, err := bw.Write(repl[best.id]); err != nil {
			return err
		}
		lo, pos = best.end, best.end
		state = rootState
		best = candidate{id: -1}
		return nil
	}

	for {
		if pos == len(buf) {
			if eof {
				if best.id >= 0 {
					if err := commit(); err != nil {
						return fmt.Errorf("write output: %w", err)
					}
					continue
				}
				if _, err := bw.Write(buf[lo:]); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				break
			}

			// Nothing before limit can take part in a future match.
			limit := pos - int(a.states[state].depth)
			if best.id >= 0 && best.start < limit {
				limit = best.start
			}
			if limit > lo {
				if _, err := bw.Write(buf[lo:limit]); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				lo = limit
			}
			n := copy(buf, buf[lo:])
			buf = buf[:n]
			pos -= lo
			if best.id >= 0 {
				best.start -= lo
				best.end -= lo
			}
			lo = 0

			if cap(buf)-len(buf) < chunk {
				grown := make([]byte, len(buf), len(buf)+2*chunk)
				copy(grown, buf)
				buf = grown
			}
			m, err := r.Read(buf[len(buf) : len(buf)+chunk])
			buf = buf[:len(buf)+m]
			if err == io.EOF {
				eof = true
			} else if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			continue
		}

		state = a.next(state, buf[pos])
		pos++
		for o := a.firstOut(state); o >= 0; o = a.states[o].dict {
			id := a.states[o].out
			start := pos - int(a.states[o].depth)
			if best.id < 0 || start < best.start || (start == best.start && id < best.id) {
				best = candidate{start: start, end: pos, id: id}
			}
		}
		// The pending match is final once no match in progress can start
		// at or before it.
		if best.id >= 0 && pos-int(a.states[state].depth) > best.start {
			if err := commit(); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
