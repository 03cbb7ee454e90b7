package texhash

import (
	"context"
	"errors"
	"testing"
)

// makeTextures builds a deterministic mix of direct-color and indexed textures.
func makeTextures(t *testing.T, n int) []Texture {
	t.Helper()
	rng := newTestRNG(t)
	tlut := randomBytes(rng, 512)
	textures := make([]Texture, n)
	for i := range textures {
		switch i % 3 {
		case 0:
			textures[i] = Texture{Src: Bytes(randomBytes(rng, 16*16*4)), Width: 16, Height: 16, Size: sizeRGBA32, RowStride: 64}
		case 1:
			textures[i] = Texture{Src: Bytes(randomBytes(rng, 32*8)), Width: 32, Height: 8, Size: sizeCI8, RowStride: 32, Palette: Bytes(tlut)}
		default:
			textures[i] = Texture{Src: Bytes(randomBytes(rng, 8*8)), Width: 16, Height: 8, Size: sizeCI4, RowStride: 8, Palette: Bytes(tlut)}
		}
	}
	return textures
}

func TestChecksumBatchMatchesSequential(t *testing.T) {
	textures := makeTextures(t, 50)
	pool := newTestPool(t, WithProcessors(4))

	for _, e := range []Engine{EngineFast, EngineStrong} {
		t.Run(e.String(), func(t *testing.T) {
			got, err := ChecksumBatch(context.Background(), pool, e, textures)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(textures) {
				t.Fatalf("len = %d, want %d", len(got), len(textures))
			}
			for i, tex := range textures {
				var want uint64
				if e == EngineStrong {
					want = Checksum64Strong(tex.Src, tex.Width, tex.Height, tex.Size, tex.RowStride, tex.Palette)
				} else {
					want = Checksum64(tex.Src, tex.Width, tex.Height, tex.Size, tex.RowStride, tex.Palette)
				}
				if got[i] != want {
					t.Errorf("texture %d: 0x%016X, want 0x%016X", i, got[i], want)
				}
			}
		})
	}
}

func TestChecksumBatchNilPool(t *testing.T) {
	textures := makeTextures(t, 7)
	got, err := ChecksumBatch(context.Background(), nil, EngineStrong, textures, WithAlgorithm(AlgoXXH64))
	if err != nil {
		t.Fatal(err)
	}
	h := NewHasher(WithAlgorithm(AlgoXXH64))
	for i, tex := range textures {
		if want := h.Checksum(EngineStrong, tex); got[i] != want {
			t.Errorf("texture %d: 0x%016X, want 0x%016X", i, got[i], want)
		}
	}
}

func TestChecksumBatchEmpty(t *testing.T) {
	got, err := ChecksumBatch(context.Background(), nil, EngineFast, nil)
	if err != nil || len(got) != 0 {
		t.Errorf("ChecksumBatch(empty) = %v, %v", got, err)
	}
}

func TestChecksumBatchCancelled(t *testing.T) {
	textures := makeTextures(t, 20)
	pool := newTestPool(t, WithProcessors(2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := ChecksumBatch(ctx, pool, EngineFast, textures)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if got != nil {
		t.Error("results returned for cancelled batch")
	}
}
