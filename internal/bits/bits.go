// Package bits provides low-level bit manipulation primitives.
package bits

import "encoding/binary"

// Fold64 folds a 64-bit hash into 32 bits by XOR-ing its halves.
func Fold64(h uint64) uint32 {
	return uint32(h) ^ uint32(h>>32)
}

// LoadWord32 reads a little-endian uint32 starting at mem[off].
// Bytes outside mem read as zero, so off may be negative or run past the end.
func LoadWord32(mem []byte, off int) uint32 {
	if off >= 0 && off+4 <= len(mem) {
		return binary.LittleEndian.Uint32(mem[off:])
	}
	var v uint32
	for i := range 4 {
		v |= uint32(LoadByte(mem, off+i)) << (i * 8)
	}
	return v
}

// LoadByte returns mem[off], or zero when off is outside mem.
func LoadByte(mem []byte, off int) byte {
	if off < 0 || off >= len(mem) {
		return 0
	}
	return mem[off]
}

// CopyClamped copies len(dst) bytes starting at mem[off] into dst.
// Bytes outside mem are written as zero.
func CopyClamped(dst, mem []byte, off int) {
	n := len(dst)
	if off >= 0 && off+n <= len(mem) {
		copy(dst, mem[off:off+n])
		return
	}
	for i := range dst {
		dst[i] = LoadByte(mem, off+i)
	}
}
