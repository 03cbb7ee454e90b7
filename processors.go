package texhash

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// MaxProcessors bounds the number of worker threads a Pool provisions
// scratch slots for.
const MaxProcessors = 32

var numProcessors = sync.OnceValue(func() int {
	n := clampProcessors(runtime.NumCPU())
	zap.L().Debug("number of processors", zap.Int("processors", n))
	return n
})

// NumProcessors returns the hardware concurrency clamped to
// [1, MaxProcessors]. It is computed once per process.
func NumProcessors() int {
	return numProcessors()
}

func clampProcessors(n int) int {
	return min(max(n, 1), MaxProcessors)
}
