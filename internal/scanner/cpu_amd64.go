//go:build amd64

package scanner

import (
	"golang.org/x/sys/cpu"
)

// Captured once; the fast path never re-queries the CPU.
var useSSE2 = cpu.X86.HasSSE2

func hasSSE2() bool {
	return useSSE2
}
