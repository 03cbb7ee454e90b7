package texhash

import (
	"go.uber.org/zap"

	"github.com/tamirms/texhash/internal/strong"
)

// HasherOption is a functional option for configuring a Hasher.
type HasherOption func(*Hasher)

// PoolOption is a functional option for configuring a Pool.
type PoolOption func(*Pool)

// WithLogger sets the logger used for fault and fallback diagnostics.
// The default is zap.L(), resolved at log time.
func WithLogger(l *zap.Logger) HasherOption {
	return func(h *Hasher) {
		h.log = l
	}
}

// WithAlgorithm sets the mixing hash of the strong engine.
// Default is AlgoXXH3.
func WithAlgorithm(algo HashAlgorithm) HasherOption {
	return func(h *Hasher) {
		h.algo = algo
	}
}

// WithPool binds the Hasher to a thread slot of pool. The strong engine
// gathers rows into that slot's scratch buffer instead of allocating.
//
// Each goroutine hashing concurrently must use a distinct thread index;
// the pool does not synchronize access to a slot.
func WithPool(pool *Pool, thread int) HasherOption {
	return func(h *Hasher) {
		h.pool = pool
		h.thread = thread
	}
}

// withHashFunc overrides the strong engine's hash. Used by tests.
func withHashFunc(f strong.HashFunc) HasherOption {
	return func(h *Hasher) {
		h.hash = f
	}
}

// WithProcessors sets the number of worker threads the pool provisions
// scratch slots for. Values are clamped to [1, MaxProcessors].
// Default is NumProcessors().
func WithProcessors(n int) PoolOption {
	return func(p *Pool) {
		p.processors = clampProcessors(n)
	}
}

// WithMaxThreadBuffer caps the size a single thread scratch buffer may grow
// to. Requests above the cap fail with ErrAllocFailed.
func WithMaxThreadBuffer(size int) PoolOption {
	return func(p *Pool) {
		p.maxThreadBuffer = size
	}
}

// WithPrefault asks the kernel to populate the role buffers when they are
// mapped, trading Init latency for fault-free first use.
func WithPrefault(enabled bool) PoolOption {
	return func(p *Pool) {
		p.prefault = enabled
	}
}

// WithPoolLogger sets the pool's logger. The default is zap.L().
func WithPoolLogger(l *zap.Logger) PoolOption {
	return func(p *Pool) {
		p.log = l
	}
}
