package utf8dec

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeAll feeds every byte and collects the results that are not Incomplete.
func decodeAll(s *State, data []byte) []Result {
	var out []Result
	for _, b := range data {
		if r := Step(s, b); r.Kind != Incomplete {
			out = append(out, r)
		}
	}
	return out
}

func TestStep_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"ascii", "a"},
		{"control", "\x01"},
		{"2-byte", "ñ"},
		{"3-byte", "漢"},
		{"3-byte E0", "\u0800"},
		{"3-byte ED", "\uD7FF"},
		{"4-byte", "😀"},
		{"4-byte max", "\U0010FFFF"},
		{"variation selector", "\uFE0F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			want, size := utf8.DecodeRuneInString(tt.input)
			require.Equal(t, len(tt.input), size)

			got := decodeAll(&s, []byte(tt.input))
			require.Len(t, got, 1)
			assert.Equal(t, Success, got[0].Kind)
			assert.Equal(t, want, got[0].Codepoint)
			assert.False(t, s.Pending())
		})
	}
}

func TestStep_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"lone continuation", []byte{0x80}},
		{"overlong C0", []byte{0xC0}},
		{"overlong C1", []byte{0xC1}},
		{"F5 lead", []byte{0xF5}},
		{"FF lead", []byte{0xFF}},
		{"overlong E0", []byte{0xE0, 0x80}},
		{"surrogate", []byte{0xED, 0xA0}},
		{"overlong F0", []byte{0xF0, 0x80}},
		{"above max", []byte{0xF4, 0x90}},
		{"bad continuation", []byte{0xE6, 0xBC, 0xC3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			got := decodeAll(&s, tt.input)
			require.Len(t, got, 1)
			assert.Equal(t, Invalid, got[0].Kind, "got %s", got[0].Kind)
			assert.False(t, s.Pending())
		})
	}
}

func TestStep_Resumable(t *testing.T) {
	var s State
	input := []byte("漢")

	assert.Equal(t, Incomplete, Step(&s, input[0]).Kind)
	assert.Equal(t, Incomplete, Step(&s, input[1]).Kind)
	assert.True(t, s.Pending())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, uint8(3), s.expected)

	r := Step(&s, input[2])
	assert.Equal(t, Success, r.Kind)
	assert.Equal(t, '漢', r.Codepoint)
	assert.Equal(t, 0, s.Len())
}

func TestStep_ResyncAfterInvalid(t *testing.T) {
	var s State
	got := decodeAll(&s, []byte("\xFFa\xE6\xBC\xA2"))
	require.Len(t, got, 3)
	assert.Equal(t, Invalid, got[0].Kind)
	assert.Equal(t, Result{Kind: Success, Codepoint: 'a'}, got[1])
	assert.Equal(t, Result{Kind: Success, Codepoint: '漢'}, got[2])
}

func TestState_Accepts(t *testing.T) {
	var s State
	assert.False(t, s.Accepts(0x80), "idle decoder accepts nothing")

	Step(&s, 0xE6)
	Step(&s, 0xBC)
	assert.True(t, s.Accepts(0xA2))
	assert.False(t, s.Accepts('A'))
	assert.False(t, s.Accepts(0xF0))

	// E0 and F4 narrow the range of the following byte.
	s.Reset()
	Step(&s, 0xE0)
	assert.False(t, s.Accepts(0x9F))
	assert.True(t, s.Accepts(0xA0))
	s.Reset()
	Step(&s, 0xF4)
	assert.True(t, s.Accepts(0x8F))
	assert.False(t, s.Accepts(0x90))
}

// A lead byte that cuts a sequence short decodes normally once the caller
// resets and feeds it again.
func TestStep_RefeedRejectedByte(t *testing.T) {
	var s State
	input := []byte("\xE6😀")

	Step(&s, input[0])
	require.False(t, s.Accepts(input[1]))
	s.Reset()

	got := decodeAll(&s, input[1:])
	require.Len(t, got, 1)
	assert.Equal(t, Result{Kind: Success, Codepoint: '😀'}, got[0])
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "incomplete", Incomplete.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "invalid", Invalid.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func TestState_Reset(t *testing.T) {
	var s State
	Step(&s, 0xF0)
	require.True(t, s.Pending())

	s.Reset()
	assert.False(t, s.Pending())
	assert.Equal(t, Result{Kind: Success, Codepoint: 'x'}, Step(&s, 'x'))
}
