// Package texhash computes content identifiers for decoded textures, used to
// key caches of hi-res replacement textures.
//
// Two checksum families are provided. The fast Rice checksum is a rolling
// rotate-and-add over texel rows; the strong checksum gathers the rows into
// one buffer and hashes it with XXH3 (or another 64-bit mixing hash). Both
// are bit-compatible with the identifiers of existing texture packs.
//
// # Basic Usage
//
// Hashing an RGBA8 texture:
//
//	size := texhash.PackSize(texhash.TexelRGBA, texhash.Depth32)
//	id := texhash.Checksum64(texhash.Bytes(pix), width, height, size, width*4, texhash.Source{})
//
// Hashing an 8-bit color-indexed texture with its palette:
//
//	size := texhash.PackSize(texhash.TexelCI, texhash.Depth8)
//	id := texhash.Checksum64Strong(texhash.Bytes(indices), width, height, size, stride, texhash.Bytes(tlut))
//	paletteCRC, texelCRC := uint32(id>>32), uint32(id)
//
// Hashing from worker goroutines without per-call allocation:
//
//	pool := texhash.NewPool(texhash.WithProcessors(workers))
//	if err := pool.Init(maxWidth, maxHeight); err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Shutdown()
//
//	// in worker i
//	h := texhash.NewHasher(texhash.WithPool(pool, i))
//	id := h.Checksum64Strong(src, width, height, size, stride, palette)
//
// # Package Structure
//
//   - Public API: checksum.go (package functions), hasher.go (Hasher, composite checksums)
//   - Configuration: options.go (HasherOption, PoolOption), algorithm.go (HashAlgorithm)
//   - Memory: source.go (Source), pool.go (Pool), processors.go (NumProcessors)
//   - Sizing: format.go (ColorFormat, SizeOf, PackSize)
//   - Parallel hashing: batch.go (ChecksumBatch)
//   - Engines: internal/rice/, internal/strong/, internal/cimax/
//   - Platform: populate_*.go (role buffer prefaulting)
//
// The texhash command (cmd/texhash) hashes image files and raw memory dumps
// with this package; its image packing, dump mapping, configuration and
// logging live in internal/texconv, internal/dump, internal/config and
// internal/logger.
package texhash
