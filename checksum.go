package texhash

import (
	"github.com/zeebo/xxh3"

	intbits "github.com/tamirms/texhash/internal/bits"
)

// std backs the package-level functions: XXH3, zap.L(), per-call scratch.
var std Hasher

// Rice returns the Rice checksum of height rows of width texels at src.
// See Hasher.Rice.
func Rice(src Source, width, height, size, rowStride int) uint32 {
	return std.Rice(src, width, height, size, rowStride)
}

// RiceCI4 returns the Rice checksum of a 4-bit indexed region and the
// highest palette index it uses.
func RiceCI4(src Source, width, height, rowStride int) (crc, maxIndex uint32) {
	return std.RiceCI4(src, width, height, rowStride)
}

// RiceCI8 returns the Rice checksum of an 8-bit indexed region and the
// highest palette index it uses.
func RiceCI8(src Source, width, height, rowStride int) (crc, maxIndex uint32) {
	return std.RiceCI8(src, width, height, rowStride)
}

// Strong returns the XXH3-based strong checksum of a region.
// See Hasher.Strong.
func Strong(src Source, width, height, size, rowStride int) uint32 {
	return std.Strong(src, width, height, size, rowStride)
}

// StrongCI4 returns the strong checksum of a 4-bit indexed region and the
// highest palette index it uses.
func StrongCI4(src Source, width, height, rowStride int) (crc, maxIndex uint32) {
	return std.StrongCI4(src, width, height, rowStride)
}

// StrongCI8 returns the strong checksum of an 8-bit indexed region and the
// highest palette index it uses.
func StrongCI8(src Source, width, height, rowStride int) (crc, maxIndex uint32) {
	return std.StrongCI8(src, width, height, rowStride)
}

// Checksum64 returns the composite Rice checksum of a texture.
// See Hasher.Checksum64.
func Checksum64(src Source, width, height, size, rowStride int, palette Source) uint64 {
	return std.Checksum64(src, width, height, size, rowStride, palette)
}

// Checksum64Strong returns the composite strong checksum of a texture.
func Checksum64Strong(src Source, width, height, size, rowStride int, palette Source) uint64 {
	return std.Checksum64Strong(src, width, height, size, rowStride, palette)
}

// ChecksumTx returns XXH3-64 of the first SizeOf(width, height, format)
// bytes of src folded to 32 bits. The texture must be tightly packed.
// Bytes beyond src are not read; the hashed prefix is cut short instead.
func ChecksumTx(src []byte, width, height int, format ColorFormat) uint32 {
	n := min(max(SizeOf(width, height, format), 0), len(src))
	return intbits.Fold64(xxh3.Hash(src[:n]))
}
