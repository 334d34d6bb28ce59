//go:build !amd64 || noasm

package scanner

// hasSIMD returns false for unsupported architectures
func hasSIMD() bool {
	return false
}

// plainPrefixSIMD falls back to word-at-a-time scanning
func plainPrefixSIMD(data []byte) int {
	return plainPrefixSWAR(data)
}
