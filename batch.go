package texhash

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Texture describes one texture for batch hashing.
// Fields mirror the arguments of Checksum64.
type Texture struct {
	Src       Source
	Width     int
	Height    int
	Size      int
	RowStride int
	Palette   Source
}

// ChecksumBatch computes the composite checksum of every texture using
// engine e and returns them in input order.
//
// Work is spread over min(pool.Processors(), len(textures)) goroutines.
// Worker i hashes with a Hasher bound to thread slot i of pool, so pool
// must be initialized and not shared with other callers for the duration of
// the batch. A nil pool runs a single worker that allocates its scratch
// memory. opts apply to every worker's Hasher; WithPool is overridden.
//
// If ctx is cancelled, ChecksumBatch stops handing out textures and returns
// ctx's error.
func ChecksumBatch(ctx context.Context, pool *Pool, e Engine, textures []Texture, opts ...HasherOption) ([]uint64, error) {
	results := make([]uint64, len(textures))
	if len(textures) == 0 {
		return results, nil
	}

	workers := 1
	if pool != nil {
		workers = min(pool.Processors(), len(textures))
	}

	g, gctx := errgroup.WithContext(ctx)
	work := make(chan int, workers*2)

	g.Go(func() error {
		defer close(work)
		for i := range textures {
			select {
			case work <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := range workers {
		hasherOpts := append(append([]HasherOption(nil), opts...), WithPool(pool, w))
		h := NewHasher(hasherOpts...)
		g.Go(func() error {
			for i := range work {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = h.Checksum(e, textures[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
