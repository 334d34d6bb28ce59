package textscan

import (
	"github.com/biggeezerdevelopment/textscan/internal/cluster"
	"github.com/biggeezerdevelopment/textscan/internal/props"
	"github.com/biggeezerdevelopment/textscan/internal/scanner"
)

// Scanner holds the width rules and the ASCII path used by a scan. It has no
// per-stream state and may be shared.
type Scanner struct {
	props *props.Table
	ascii func(data []byte, maxColumns int) int
	simd  bool
	ambig bool
}

type Option func(*Scanner)

// WithEastAsianAmbiguousWide counts East Asian ambiguous-width codepoints
// as two columns.
func WithEastAsianAmbiguousWide(wide bool) Option {
	return func(s *Scanner) {
		s.ambig = wide
	}
}

// WithScalarOnly disables the vectorized ASCII path.
func WithScalarOnly() Option {
	return func(s *Scanner) {
		s.simd = false
	}
}

func New(opts ...Option) *Scanner {
	s := &Scanner{simd: true}
	for _, opt := range opts {
		opt(s)
	}

	s.props = props.NewTable(s.ambig)
	s.ascii = scanner.PlainPrefixScalar
	if s.simd {
		s.ascii = scanner.PlainPrefix
	}
	return s
}

// Scan measures the longest prefix of span that fits maxColumns and updates
// st so the next call can resume at the returned Next.
//
// A control byte ends the scan. Malformed UTF-8 counts one column per
// invalid unit. A negative budget is treated as 0.
func (s *Scanner) Scan(st *State, span []byte, maxColumns int) Result {
	if maxColumns < 0 {
		maxColumns = 0
	}

	var res Result
	if len(span) == 0 {
		return res
	}

	pos := 0
	if st.Pending() {
		res = Result(cluster.Scan(&st.c, s.props, span, maxColumns))
		if res.Next < 0 {
			// The carried sequence did not fit.
			return res
		}
		pos = res.Next
	}

	// Runs alternate, so only the first one needs classifying. Once the
	// budget is spent the complex scanner may still take codepoints that
	// extend the last cluster without widening it.
	complex := pos < len(span) && scanner.IsComplex(span[pos])
	for pos < len(span) {
		if complex {
			sub := cluster.Scan(&st.c, s.props, span[pos:], maxColumns-res.Count)
			if sub.Next == 0 {
				break
			}
			res.Count += sub.Count
			res.End = pos + sub.End
			res.Next = pos + sub.Next
			pos = res.Next
			complex = false
			continue
		}

		n := s.ascii(span[pos:], maxColumns-res.Count)
		if n == 0 {
			break
		}
		pos += n
		res.Count += n
		res.End = pos
		res.Next = pos
		st.c.Plain(span[pos-1])
		complex = true
	}

	return res
}
