package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Width(t *testing.T) {
	narrow := NewTable(false)
	wide := NewTable(true)

	tests := []struct {
		name   string
		r      rune
		narrow int
		wide   int
	}{
		{"ascii letter", 'a', 1, 1},
		{"delete", 0x7F, 1, 1},
		{"latin", 'ñ', 1, 1},
		{"han", '漢', 2, 2},
		{"emoji", '😀', 2, 2},
		{"heavy heart", '❤', 1, 1},
		{"combining acute", 0x0301, 0, 0},
		{"zero width joiner", zwj, 0, 0},
		{"variation selector 16", 0xFE0F, 0, 0},
		{"ambiguous plus-minus", '±', 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.narrow, narrow.Width(tt.r))
			assert.Equal(t, tt.wide, wide.Width(tt.r))
		})
	}
}

func TestIsBoundary(t *testing.T) {
	tests := []struct {
		name     string
		prev     rune
		next     rune
		boundary bool
	}{
		{"stream start", 0, 0x0301, true},
		{"two letters", 'a', 'b', true},
		{"two han", '漢', '字', true},
		{"combining mark", 'e', 0x0301, false},
		{"emoji selector", '❤', 0xFE0F, false},
		{"text selector", '❤', 0xFE0E, false},
		{"before joiner", '👨', zwj, false},
		{"after joiner", zwj, '👩', false},
		{"joiner then letter", zwj, 'a', true},
		{"hangul L V", 0x1100, 0x1161, false},
		{"carriage return line feed", '\r', '\n', false},
		{"line feed then letter", '\n', 'a', true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.boundary, IsBoundary(tt.prev, tt.next))
		})
	}
}
