// Package utf8dec implements a byte-at-a-time UTF-8 decoder whose progress
// survives across calls, so a codepoint may be split over several buffers.
package utf8dec

// Kind classifies the outcome of feeding one byte to the decoder.
type Kind uint8

const (
	// Incomplete means the decoder needs more bytes.
	Incomplete Kind = iota
	// Success means a codepoint was completed.
	Success
	// Invalid means the bytes consumed so far do not form a valid sequence.
	Invalid
)

func (k Kind) String() string {
	switch k {
	case Incomplete:
		return "incomplete"
	case Success:
		return "success"
	case Invalid:
		return "invalid"
	}
	return "unknown"
}

// Result is the outcome of a single Step.
type Result struct {
	Kind      Kind
	Codepoint rune
}

const (
	locb = 0x80 // lowest continuation byte
	hicb = 0xBF // highest continuation byte
)

// State accumulates a partially decoded codepoint. The zero value is ready
// to use.
type State struct {
	codepoint rune
	current   uint8 // bytes consumed for the pending codepoint
	expected  uint8 // total length of the pending codepoint, 0 when idle
	lo, hi    byte  // accepted range of the next continuation byte
}

// Pending reports whether a multi-byte sequence is in progress.
func (s *State) Pending() bool {
	return s.expected != 0
}

// Len returns the number of bytes consumed for the pending codepoint.
func (s *State) Len() int {
	return int(s.current)
}

// Accepts reports whether b can continue the pending sequence. A byte it
// rejects ends the sequence without belonging to it, so callers that want to
// resynchronize Reset and feed b again as a lead byte.
func (s *State) Accepts(b byte) bool {
	return s.expected != 0 && b >= s.lo && b <= s.hi
}

// Reset drops any pending sequence.
func (s *State) Reset() {
	*s = State{}
}

// Step feeds one byte to the decoder. After Success or Invalid the state is
// idle again; a continuation byte outside the accepted range is consumed
// into the Invalid unit.
func Step(s *State, b byte) Result {
	if s.expected == 0 {
		return lead(s, b)
	}

	if b < s.lo || b > s.hi {
		s.Reset()
		return Result{Kind: Invalid}
	}

	s.codepoint = s.codepoint<<6 | rune(b&0x3F)
	s.current++
	s.lo, s.hi = locb, hicb
	if s.current < s.expected {
		return Result{Kind: Incomplete}
	}

	r := s.codepoint
	s.Reset()
	return Result{Kind: Success, Codepoint: r}
}

// lead starts a new sequence. The accepted ranges for the second byte reject
// overlong encodings, surrogates and values above U+10FFFF.
func lead(s *State, b byte) Result {
	switch {
	case b < 0x80:
		return Result{Kind: Success, Codepoint: rune(b)}
	case b < 0xC2:
		return Result{Kind: Invalid}
	case b < 0xE0:
		s.begin(rune(b&0x1F), 2, locb, hicb)
	case b == 0xE0:
		s.begin(rune(b&0x0F), 3, 0xA0, hicb)
	case b == 0xED:
		s.begin(rune(b&0x0F), 3, locb, 0x9F)
	case b < 0xF0:
		s.begin(rune(b&0x0F), 3, locb, hicb)
	case b == 0xF0:
		s.begin(rune(b&0x07), 4, 0x90, hicb)
	case b < 0xF4:
		s.begin(rune(b&0x07), 4, locb, hicb)
	case b == 0xF4:
		s.begin(rune(b&0x07), 4, locb, 0x8F)
	default:
		return Result{Kind: Invalid}
	}
	return Result{Kind: Incomplete}
}

func (s *State) begin(bits rune, length uint8, lo, hi byte) {
	s.codepoint = bits
	s.current = 1
	s.expected = length
	s.lo, s.hi = lo, hi
}
