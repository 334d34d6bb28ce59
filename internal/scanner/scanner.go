// Package scanner measures runs of plain US-ASCII text: bytes that are
// neither control codes nor part of a multi-byte UTF-8 sequence. Each plain
// byte is one column wide.
package scanner

import (
	"encoding/binary"
	"math/bits"
)

// IsPlain reports whether b is printable US-ASCII (DEL included).
func IsPlain(b byte) bool {
	return b >= ControlMax && b&ComplexBit == 0
}

// IsComplex reports whether b belongs to a multi-byte UTF-8 sequence.
func IsComplex(b byte) bool {
	return b&ComplexBit != 0
}

// HasSIMD returns true if the vectorized path is used on this machine
func HasSIMD() bool {
	return hasSIMD()
}

// PlainPrefix returns the number of leading plain bytes in data, capped at
// maxColumns.
func PlainPrefix(data []byte, maxColumns int) int {
	data = clip(data, maxColumns)
	if len(data) == 0 {
		return 0
	}
	if hasSIMD() {
		return plainPrefixSIMD(data)
	}
	return plainPrefixSWAR(data)
}

// PlainPrefixScalar is PlainPrefix without any batching.
func PlainPrefixScalar(data []byte, maxColumns int) int {
	return plainPrefixScalar(clip(data, maxColumns))
}

func clip(data []byte, maxColumns int) []byte {
	if maxColumns <= 0 {
		return nil
	}
	if maxColumns < len(data) {
		return data[:maxColumns]
	}
	return data
}

func plainPrefixScalar(data []byte) int {
	i := 0
	for i < len(data) && IsPlain(data[i]) {
		i++
	}
	return i
}

// plainPrefixSWAR checks eight bytes per step. The mask keeps the high bit
// of every disqualified byte, so the lowest set bit locates the first one.
func plainPrefixSWAR(data []byte) int {
	i := 0
	for ; i+WordChunkSize <= len(data); i += WordChunkSize {
		w := binary.LittleEndian.Uint64(data[i:])
		if m := (w | ^((w & lowBits) + plainBias)) & highBits; m != 0 {
			return i + bits.TrailingZeros64(m)/8
		}
	}
	return i + plainPrefixScalar(data[i:])
}
