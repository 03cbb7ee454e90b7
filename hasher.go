package texhash

import (
	"fmt"

	"go.uber.org/zap"

	texerrors "github.com/tamirms/texhash/errors"

	"github.com/tamirms/texhash/internal/rice"
	"github.com/tamirms/texhash/internal/strong"
)

// Engine selects the checksum family of a composite checksum.
type Engine uint8

const (
	// EngineFast uses the Rice checksum.
	EngineFast Engine = 0

	// EngineStrong uses the gathered-row mixing hash.
	EngineStrong Engine = 1
)

// String returns the engine name.
func (e Engine) String() string {
	switch e {
	case EngineFast:
		return "fast"
	case EngineStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// ParseEngine maps an engine name to its Engine. An empty name selects the
// strong engine.
func ParseEngine(name string) (Engine, error) {
	switch name {
	case "strong", "":
		return EngineStrong, nil
	case "fast", "rice":
		return EngineFast, nil
	default:
		return 0, fmt.Errorf("%w: %q", texerrors.ErrUnknownEngine, name)
	}
}

// Palette rows span the full index range of each depth, 2 bytes per entry.
const (
	paletteStrideCI4 = 16 * 2
	paletteStrideCI8 = 256 * 2
)

// Hasher computes texture checksums. It binds a logger, the strong engine's
// mixing hash and, optionally, a pool thread slot used as scratch memory.
//
// The zero Hasher is ready to use: it logs to zap.L(), hashes with XXH3 and
// allocates scratch memory per call.
//
// A Hasher holds no mutable state of its own. It is safe for concurrent use
// unless it is bound to a pool slot, in which case it must be used by one
// goroutine at a time.
//
// Every method contains panics raised while hashing: the fault is logged and
// 0 is returned.
type Hasher struct {
	log    *zap.Logger
	algo   HashAlgorithm
	hash   strong.HashFunc
	pool   *Pool
	thread int
}

// NewHasher creates a Hasher with the given options.
func NewHasher(opts ...HasherOption) *Hasher {
	h := &Hasher{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Algorithm returns the strong engine's mixing hash.
func (h *Hasher) Algorithm() HashAlgorithm {
	return h.algo
}

func (h *Hasher) logger() *zap.Logger {
	if h.log != nil {
		return h.log
	}
	return zap.L()
}

func (h *Hasher) hashFunc() strong.HashFunc {
	if h.hash != nil {
		return h.hash
	}
	return h.algo.hashFunc()
}

// recoverFault must be deferred directly by each entry point.
func (h *Hasher) recoverFault(engine string) {
	if r := recover(); r != nil {
		h.logger().Error("checksum fault, returning 0",
			zap.String("engine", engine),
			zap.Any("panic", r),
		)
	}
}

// scratch returns the bound pool slot grown to need bytes, or nil when the
// strong engine should allocate for itself.
func (h *Hasher) scratch(need int) []byte {
	if h.pool == nil || need == 0 {
		return nil
	}
	buf, err := h.pool.ThreadBuffer(h.thread, scratchSlot, need)
	if err != nil {
		h.logger().Warn("scratch buffer unavailable, allocating",
			zap.Int("thread", h.thread),
			zap.Int("size", need),
			zap.Error(err),
		)
		return nil
	}
	return buf
}

// Rice returns the Rice checksum of height rows of width texels at src.
// size carries the depth code in its low byte; rowStride is the byte
// distance between row starts.
func (h *Hasher) Rice(src Source, width, height, size, rowStride int) (crc uint32) {
	defer h.recoverFault("rice")
	return rice.Checksum(src.Mem, src.Base, width, height, size, rowStride)
}

// RiceCI4 returns the Rice checksum of a 4-bit indexed region and the
// highest palette index it uses.
func (h *Hasher) RiceCI4(src Source, width, height, rowStride int) (crc, maxIndex uint32) {
	defer h.recoverFault("rice-ci4")
	return rice.CI4(src.Mem, src.Base, width, height, rowStride)
}

// RiceCI8 returns the Rice checksum of an 8-bit indexed region and the
// highest palette index it uses.
func (h *Hasher) RiceCI8(src Source, width, height, rowStride int) (crc, maxIndex uint32) {
	defer h.recoverFault("rice-ci8")
	return rice.CI8(src.Mem, src.Base, width, height, rowStride)
}

// Strong returns the strong checksum of height rows of width texels at src.
func (h *Hasher) Strong(src Source, width, height, size, rowStride int) (crc uint32) {
	defer h.recoverFault("strong")
	scratch := h.scratch(strong.ScratchSize(width, height, size, rowStride))
	return strong.Checksum(h.hashFunc(), scratch, src.Mem, src.Base, width, height, size, rowStride)
}

// StrongCI4 returns the strong checksum of a 4-bit indexed region and the
// highest palette index it uses.
func (h *Hasher) StrongCI4(src Source, width, height, rowStride int) (crc, maxIndex uint32) {
	defer h.recoverFault("strong-ci4")
	scratch := h.scratch(strong.ScratchSize(width, height, Depth4, rowStride))
	return strong.CI4(h.hashFunc(), scratch, src.Mem, src.Base, width, height, rowStride)
}

// StrongCI8 returns the strong checksum of an 8-bit indexed region and the
// highest palette index it uses.
func (h *Hasher) StrongCI8(src Source, width, height, rowStride int) (crc, maxIndex uint32) {
	defer h.recoverFault("strong-ci8")
	scratch := h.scratch(strong.ScratchSize(width, height, Depth8, rowStride))
	return strong.CI8(h.hashFunc(), scratch, src.Mem, src.Base, width, height, rowStride)
}

// Checksum64 returns the composite Rice checksum of a texture.
//
// With a palette and a 4- or 8-bit depth code in the low byte of size, the
// high 32 bits hold the checksum of the palette entries the texture uses and
// the low 32 bits hold the indexed checksum of the texels. Otherwise, or if
// that composite is 0, the result is the plain checksum in the low 32 bits.
// A null src returns 0.
func (h *Hasher) Checksum64(src Source, width, height, size, rowStride int, palette Source) uint64 {
	return h.composite(EngineFast, src, width, height, size, rowStride, palette)
}

// Checksum64Strong is Checksum64 computed with the strong engine.
func (h *Hasher) Checksum64Strong(src Source, width, height, size, rowStride int, palette Source) uint64 {
	return h.composite(EngineStrong, src, width, height, size, rowStride, palette)
}

// Checksum returns the composite checksum of t using engine e.
func (h *Hasher) Checksum(e Engine, t Texture) uint64 {
	return h.composite(e, t.Src, t.Width, t.Height, t.Size, t.RowStride, t.Palette)
}

func (h *Hasher) composite(e Engine, src Source, width, height, size, rowStride int, palette Source) uint64 {
	if src.IsNil() {
		return 0
	}

	var result uint64
	if !palette.IsNil() {
		var crc, maxIndex uint32
		var paletteStride int
		switch size & 0xFF {
		case Depth8:
			crc, maxIndex = h.indexed(e, Depth8, src, width, height, rowStride)
			paletteStride = paletteStrideCI8
		case Depth4:
			crc, maxIndex = h.indexed(e, Depth4, src, width, height, rowStride)
			paletteStride = paletteStrideCI4
		}
		if paletteStride != 0 {
			paletteCRC := h.plain(e, palette, int(maxIndex)+1, 1, Depth16, paletteStride)
			result = uint64(paletteCRC)<<32 | uint64(crc)
		}
	}
	if result == 0 {
		result = uint64(h.plain(e, src, width, height, size, rowStride))
	}
	return result
}

func (h *Hasher) plain(e Engine, src Source, width, height, size, rowStride int) uint32 {
	if e == EngineStrong {
		return h.Strong(src, width, height, size, rowStride)
	}
	return h.Rice(src, width, height, size, rowStride)
}

func (h *Hasher) indexed(e Engine, depth int, src Source, width, height, rowStride int) (crc, maxIndex uint32) {
	switch {
	case e == EngineStrong && depth == Depth8:
		return h.StrongCI8(src, width, height, rowStride)
	case e == EngineStrong:
		return h.StrongCI4(src, width, height, rowStride)
	case depth == Depth8:
		return h.RiceCI8(src, width, height, rowStride)
	default:
		return h.RiceCI4(src, width, height, rowStride)
	}
}
