// Package props answers the two per-codepoint questions the scanners ask:
// where grapheme clusters break and how many terminal cells a codepoint
// occupies.
package props

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const (
	zwj        = 0x200D
	pictograph = 0x1F468 // any Extended_Pictographic codepoint works here
)

// Table resolves widths under a fixed East Asian Width policy. It is safe
// for concurrent use.
type Table struct {
	cond *runewidth.Condition
}

// NewTable returns a Table. When ambiguousWide is set, codepoints with
// East Asian Width "Ambiguous" occupy two cells.
func NewTable(ambiguousWide bool) *Table {
	return &Table{
		cond: &runewidth.Condition{
			EastAsianWidth:     ambiguousWide,
			StrictEmojiNeutral: true,
		},
	}
}

// Width returns 0, 1 or 2. Printable ASCII and DEL always take one cell,
// matching the plain-byte fast path.
func (t *Table) Width(r rune) int {
	if r >= 0x20 && r < 0x80 {
		return 1
	}
	w := t.cond.RuneWidth(r)
	switch {
	case w < 0:
		return 0
	case w > 2:
		return 2
	}
	return w
}

// IsBoundary reports whether a grapheme cluster boundary lies between prev
// and next. A zero prev (stream start or after a malformed unit) is always a
// boundary.
func (t *Table) IsBoundary(prev, next rune) bool {
	return IsBoundary(prev, next)
}

// IsBoundary is the pairwise extended grapheme cluster rule set.
func IsBoundary(prev, next rune) bool {
	if prev == 0 {
		return true
	}

	// GB11 needs the pictograph preceding the joiner, which a pair cannot
	// show. Assume it is there.
	if prev == zwj {
		return !joined(pictograph, zwj, next)
	}
	return !joined(prev, next)
}

// joined reports whether the codepoints form a single cluster.
func joined(rs ...rune) bool {
	var buf [3 * utf8.UTFMax]byte
	n := 0
	for _, r := range rs {
		n += utf8.EncodeRune(buf[n:], r)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(buf[:n], -1)
	return len(cluster) == n
}
