package scanner

// Batch sizes for the vectorized and word-at-a-time paths
const (
	SSE2ChunkSize = 16 // 128-bit vectors
	WordChunkSize = 8  // one uint64
)

// SWAR masks. A byte is disqualified when its high bit is set or its low
// seven bits are below 0x20; adding 0x60 to the low seven bits sets the high
// bit exactly for values of 0x20 and up without carrying into the next byte.
const (
	highBits  = uint64(0x8080808080808080)
	lowBits   = uint64(0x7F7F7F7F7F7F7F7F)
	plainBias = uint64(0x6060606060606060)
)

// Plain byte classification
const (
	ControlMax = 0x20 // bytes below are control codes
	ComplexBit = 0x80 // lead and continuation bytes of multi-byte sequences
)
