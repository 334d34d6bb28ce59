//go:build amd64 && !noasm

package scanner

// plainPrefixSSE2 compares 16 bytes per iteration against 0x20 as signed
// values, which flags control bytes and bytes with the high bit set in one
// instruction. It stops at the first flagged byte or when fewer than 16
// bytes remain, and returns the number of plain bytes passed.
//
//go:noescape
func plainPrefixSSE2(data []byte) int

func hasSIMD() bool {
	return hasSSE2()
}

func plainPrefixSIMD(data []byte) int {
	if !hasSSE2() || len(data) < SSE2ChunkSize {
		return plainPrefixSWAR(data)
	}
	n := plainPrefixSSE2(data)
	return n + plainPrefixSWAR(data[n:])
}
