// Package cluster measures spans of non-ASCII text. It decodes UTF-8 one
// byte at a time, groups codepoints into grapheme clusters and sums their
// widths, stopping before a cluster that does not fit the column budget.
package cluster

import (
	"github.com/biggeezerdevelopment/textscan/internal/scanner"
	"github.com/biggeezerdevelopment/textscan/internal/utf8dec"
)

const vs16 = 0xFE0F

func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

// Properties supplies the per-codepoint rules.
type Properties interface {
	IsBoundary(prev, next rune) bool
	Width(r rune) int
}

// State is carried from one call to the next for a single stream.
type State struct {
	Decoder utf8dec.State

	// Last is the most recently decoded codepoint, 0 at stream start and
	// after a malformed unit.
	Last rune

	// Width is the width already reported for the cluster ending at Last.
	// A later codepoint extending that cluster only reports the increase.
	Width int

	// Paired is set when Last is a regional indicator that completed a
	// flag, so the next indicator starts a new one.
	Paired bool
}

// Reset returns the state to stream start.
func (s *State) Reset() {
	*s = State{}
}

// Plain records a plain ASCII byte consumed by another scanner as a closed
// one-column cluster.
func (s *State) Plain(b byte) {
	s.Last = rune(b)
	s.Width = 1
	s.Paired = false
}

// Result describes one call. Offsets index the span; Start is negative when
// the call completed a sequence whose first bytes came with the previous
// call. Count columns cover [Start, End); scanning resumes at Next.
type Result struct {
	Count int
	Start int
	End   int
	Next  int
}

// Scan consumes a run of complex bytes and hands plain ASCII bytes back to
// the caller.
func Scan(st *State, p Properties, span []byte, maxColumns int) Result {
	return scan(st, p, span, maxColumns, true)
}

// run is the scratch state of one call.
type run struct {
	st    *State
	props Properties
	max   int

	count int // flushed columns; starts at -st.Width
	input int
	end   int

	cpStart int // first byte of the codepoint being decoded

	clusterStart int
	clusterWidth int
	clusterBase  int  // part of clusterWidth reported by an earlier call
	clusterHint  rune // Last before the current cluster began
	hintWidth    int  // Width before the current cluster began
	hintPaired   bool // Paired before the current cluster began

	stopped bool
}

func scan(st *State, p Properties, span []byte, maxColumns int, yieldPlain bool) Result {
	if maxColumns < 0 {
		maxColumns = 0
	}

	start := -st.Decoder.Len()
	r := run{
		st:           st,
		props:        p,
		max:          maxColumns,
		count:        -st.Width,
		end:          start,
		cpStart:      start,
		clusterStart: start,
		clusterWidth: st.Width,
		clusterBase:  st.Width,
		clusterHint:  st.Last,
		hintWidth:    st.Width,
		hintPaired:   st.Paired,
	}

	for !r.stopped && r.input < len(span) {
		b := span[r.input]
		if st.Decoder.Pending() && !st.Decoder.Accepts(b) {
			// A sequence cut short; the cutting byte is decoded afresh.
			st.Decoder.Reset()
			r.malformed()
			continue
		}
		if !scanner.IsComplex(b) && (yieldPlain || b < scanner.ControlMax) {
			break
		}

		if !st.Decoder.Pending() {
			r.cpStart = r.input
		}
		r.input++

		res := utf8dec.Step(&st.Decoder, b)
		switch res.Kind {
		case utf8dec.Incomplete:
		case utf8dec.Success:
			r.decoded(res.Codepoint)
		case utf8dec.Invalid:
			r.malformed()
		}
	}

	r.count += r.clusterWidth
	if !r.stopped {
		st.Width = r.clusterWidth
	}

	return Result{
		Count: r.count,
		Start: start,
		End:   r.end,
		Next:  r.input,
	}
}

func (r *run) decoded(cp rune) {
	prev := r.st.Last
	prevPaired := r.st.Paired
	w := r.props.Width(cp)

	// Regional indicators join two at a time.
	pair := isRegionalIndicator(prev) && isRegionalIndicator(cp)

	if r.props.IsBoundary(prev, cp) || (pair && prevPaired) {
		flushed := r.clusterWidth
		r.count += flushed
		if r.count+w > r.max {
			r.clusterWidth = 0
			r.rewind(r.cpStart, prev, flushed, prevPaired)
			return
		}

		r.clusterStart = r.cpStart
		r.clusterWidth = w
		r.clusterBase = 0
		r.clusterHint = prev
		r.hintWidth = flushed
		r.hintPaired = prevPaired
		r.end = r.input
		r.st.Last = cp
		r.st.Paired = false
		return
	}

	// Clusters take the width of their widest codepoint; VS16 asks for
	// emoji presentation and a flag is always wide. Width only ever grows.
	nw := r.clusterWidth
	if w > nw {
		nw = w
	}
	if cp == vs16 || pair {
		nw = 2
	}
	if nw > r.clusterWidth && r.count+nw > r.max {
		// The cluster no longer fits; give back all of it.
		r.clusterWidth = r.clusterBase
		r.rewind(r.clusterStart, r.clusterHint, r.hintWidth, r.hintPaired)
		return
	}

	r.clusterWidth = nw
	r.end = r.input
	r.st.Last = cp
	r.st.Paired = pair
}

// malformed counts the bytes from cpStart to input as one column.
func (r *run) malformed() {
	prev, prevPaired := r.st.Last, r.st.Paired
	flushed := r.clusterWidth
	r.count += flushed
	r.clusterWidth = 0

	if r.count+1 > r.max {
		r.rewind(r.cpStart, prev, flushed, prevPaired)
		return
	}

	r.count++
	r.end = r.input
	r.clusterStart = r.input
	r.clusterBase = 0
	r.clusterHint = 0
	r.hintWidth = 0
	r.hintPaired = false
	r.st.Last = 0
	r.st.Paired = false
}

// rewind stops the call at offset, restoring the stream state that held
// there.
func (r *run) rewind(offset int, last rune, width int, paired bool) {
	r.input = offset
	r.end = offset
	r.st.Last = last
	r.st.Width = width
	r.st.Paired = paired
	r.stopped = true
}
