// Package textscan measures UTF-8 text in terminal display columns.
//
// A scan reports the longest prefix of a span that fits a column budget
// without splitting a grapheme cluster. Scans are resumable: a State
// threads a partially decoded sequence and the current cluster from one
// call to the next, so a stream can be fed in arbitrary chunks.
package textscan

import (
	"math"
	"sync"
	"unsafe"

	"github.com/biggeezerdevelopment/textscan/internal/cluster"
	"github.com/biggeezerdevelopment/textscan/internal/scanner"
)

// State is the scan position inside one logical stream. The zero value is
// ready to use. A State must not be shared between streams or goroutines.
type State struct {
	c cluster.State
}

func NewState() *State {
	return &State{}
}

// Reset returns the state to the beginning of a stream.
func (s *State) Reset() {
	s.c.Reset()
}

// Pending reports whether a multi-byte sequence is waiting for its
// remaining bytes.
func (s *State) Pending() bool {
	return s.c.Decoder.Pending()
}

// LastCodepoint returns the most recently accepted codepoint, or 0 at the
// start of a stream and after malformed input.
func (s *State) LastCodepoint() rune {
	return s.c.Last
}

// Result describes one scan. Offsets index the span given to the call.
//
// Count columns cover span[Start:End]. Start is negative when the scan
// began by completing a sequence whose first -Start bytes arrived with the
// previous call. Next is where the following call should resume; it is
// past End only when the span ends inside an incomplete sequence.
type Result struct {
	Count int
	Start int
	End   int
	Next  int
}

// Visible returns the part of span covered by r.
func (r Result) Visible(span []byte) []byte {
	start := max(r.Start, 0)
	if r.End <= start {
		return nil
	}
	return span[start:r.End]
}

var std = New()

var statePool = sync.Pool{
	New: func() interface{} {
		return new(State)
	},
}

// Scan measures span with the default Scanner.
func Scan(st *State, span []byte, maxColumns int) Result {
	return std.Scan(st, span, maxColumns)
}

// ScanString is Scan for a string.
func ScanString(st *State, s string, maxColumns int) Result {
	return std.ScanString(st, s, maxColumns)
}

// ScanASCII returns how many leading bytes of span are printable US-ASCII,
// capped at maxColumns. Each of them is one column wide.
func ScanASCII(span []byte, maxColumns int) int {
	return scanner.PlainPrefix(span, maxColumns)
}

// Fit measures span as a complete stream of its own.
func Fit(span []byte, maxColumns int) Result {
	return std.Fit(span, maxColumns)
}

// Width returns the display width of span up to its first control byte.
func Width(span []byte) int {
	return std.Width(span)
}

// HasSIMD returns true if the vectorized ASCII path is used on this machine
func HasSIMD() bool {
	return scanner.HasSIMD()
}

func (s *Scanner) ScanString(st *State, str string, maxColumns int) Result {
	return s.Scan(st, unsafe.Slice(unsafe.StringData(str), len(str)), maxColumns)
}

func (s *Scanner) Fit(span []byte, maxColumns int) Result {
	st := statePool.Get().(*State)
	defer func() {
		st.Reset()
		statePool.Put(st)
	}()

	return s.Scan(st, span, maxColumns)
}

func (s *Scanner) Width(span []byte) int {
	return s.Fit(span, math.MaxInt).Count
}
