package textscan

import (
	"bytes"
	"io"

	"github.com/biggeezerdevelopment/textscan/internal/scanner"
)

// Writer cuts every line written through it to a fixed number of display
// columns. Lines may arrive split across any number of Write calls, even
// inside a multi-byte sequence. Control bytes pass through uncounted; a
// newline starts a fresh line.
//
// Bytes already written are never taken back: when an emoji selector in a
// later write would widen a cluster past the limit, the selector is dropped
// and the base stays.
type Writer struct {
	w       io.Writer
	s       *Scanner
	columns int

	state State
	left  int    // columns left on the current line
	carry []byte // leading bytes of a sequence split across writes
	full  bool   // the rest of the line is dropped
}

// NewWriter returns a Writer using the default Scanner.
func NewWriter(w io.Writer, columns int) *Writer {
	return std.NewWriter(w, columns)
}

func (s *Scanner) NewWriter(w io.Writer, columns int) *Writer {
	if columns < 0 {
		columns = 0
	}
	return &Writer{
		w:       w,
		s:       s,
		columns: columns,
		left:    columns,
		carry:   make([]byte, 0, 4),
	}
}

func (lw *Writer) Write(p []byte) (int, error) {
	total := len(p)

	for len(p) > 0 {
		if lw.full {
			i := bytes.IndexByte(p, '\n')
			if i < 0 {
				return total, nil
			}
			p = p[i:]
			lw.full = false
		}

		// A pending sequence cut by a control byte is left to Scan, which
		// counts it as one malformed column.
		if b := p[0]; b < scanner.ControlMax && !lw.state.Pending() {
			lw.state.Reset()
			if b == '\n' {
				lw.left = lw.columns
			}
			if _, err := lw.w.Write(p[:1]); err != nil {
				return total - len(p), err
			}
			p = p[1:]
			continue
		}

		res := lw.s.Scan(&lw.state, p, lw.left)
		if res.Next < 0 {
			lw.carry = lw.carry[:0]
			lw.full = true
			continue
		}

		if res.Start < 0 && res.End >= 0 {
			if _, err := lw.w.Write(lw.carry); err != nil {
				return total - len(p), err
			}
			lw.carry = lw.carry[:0]
		}
		if visible := res.Visible(p); len(visible) > 0 {
			if _, err := lw.w.Write(visible); err != nil {
				return total - len(p), err
			}
		}
		lw.left -= res.Count

		if res.End < res.Next {
			if res.End >= 0 {
				lw.carry = append(lw.carry[:0], p[res.End:res.Next]...)
			} else {
				lw.carry = append(lw.carry, p[:res.Next]...)
			}
		}

		p = p[res.Next:]
		if len(p) > 0 && p[0] >= scanner.ControlMax {
			lw.full = true
		}
	}

	return total, nil
}

// Reset discards any partial line state and starts writing to w.
func (lw *Writer) Reset(w io.Writer) {
	lw.w = w
	lw.state.Reset()
	lw.left = lw.columns
	lw.carry = lw.carry[:0]
	lw.full = false
}
