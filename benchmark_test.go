package texhash

import (
	"context"
	"fmt"
	"testing"
)

func benchmarkEngineN(b *testing.B, e Engine, side int) {
	rng := newTestRNG(b)
	pix := randomBytes(rng, side*side*4)
	src := Bytes(pix)

	b.SetBytes(int64(len(pix)))
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if e == EngineStrong {
			Checksum64Strong(src, side, side, sizeRGBA32, side*4, Source{})
		} else {
			Checksum64(src, side, side, sizeRGBA32, side*4, Source{})
		}
	}
}

func BenchmarkRice64(b *testing.B)    { benchmarkEngineN(b, EngineFast, 64) }
func BenchmarkRice256(b *testing.B)   { benchmarkEngineN(b, EngineFast, 256) }
func BenchmarkStrong64(b *testing.B)  { benchmarkEngineN(b, EngineStrong, 64) }
func BenchmarkStrong256(b *testing.B) { benchmarkEngineN(b, EngineStrong, 256) }

// BenchmarkStrongPooled measures the strong engine gathering into a pool
// slot instead of allocating per call.
func BenchmarkStrongPooled(b *testing.B) {
	rng := newTestRNG(b)
	const side = 256
	pix := randomBytes(rng, side*side*4)

	pool := NewPool(WithProcessors(1))
	if err := pool.Init(side, side); err != nil {
		b.Fatal(err)
	}
	defer pool.Shutdown()
	h := NewHasher(WithPool(pool, 0))

	b.SetBytes(int64(len(pix)))
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		h.Checksum64Strong(Bytes(pix), side, side, sizeRGBA32, side*4, Source{})
	}
}

func BenchmarkCI8Composite(b *testing.B) {
	rng := newTestRNG(b)
	const side = 128
	indices := randomIndices(rng, side*side, 200)
	tlut := randomBytes(rng, 512)

	b.SetBytes(int64(len(indices)))
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		Checksum64(Bytes(indices), side, side, sizeCI8, side, Bytes(tlut))
	}
}

func BenchmarkChecksumBatch(b *testing.B) {
	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			rng := newTestRNG(b)
			textures := make([]Texture, 64)
			var total int64
			for i := range textures {
				pix := randomBytes(rng, 64*64*4)
				total += int64(len(pix))
				textures[i] = Texture{Src: Bytes(pix), Width: 64, Height: 64, Size: sizeRGBA32, RowStride: 256}
			}
			pool := NewPool(WithProcessors(workers))
			if err := pool.Init(64, 64); err != nil {
				b.Fatal(err)
			}
			defer pool.Shutdown()

			b.SetBytes(total)
			b.ResetTimer()
			for range b.N {
				if _, err := ChecksumBatch(context.Background(), pool, EngineStrong, textures); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
