// Package rice implements the Rice CRC32, the rolling rotate-and-add checksum
// that keys hi-res texture packs.
//
// The checksum is not a CRC in the polynomial sense. Each row is walked from
// its last 32-bit word down to its first; every word is XOR-ed with its byte
// offset, the accumulator is rotated left by 4 and the word is added. After a
// row, the last word read is XOR-ed with the row counter and added once more.
// Rows are visited from the region start, but the row counter runs from
// height-1 down to 0.
//
// Existing texture packs are keyed by these values, so every quirk of the
// loop is preserved: descending column order, the self-XOR with the offset,
// do-while semantics that always process at least one row and one word, and
// reads of up to 3 bytes before the row start when a row is narrower than a
// word. Those reads are served from mem when base leaves room for them and
// read as zero otherwise.
package rice

import (
	"math/bits"

	intbits "github.com/tamirms/texhash/internal/bits"
	"github.com/tamirms/texhash/internal/cimax"
)

// Depth codes for the low byte of size.
const (
	depth4  = 0
	depth8  = 1
	depth32 = 3
)

// BytesPerLine returns the number of bytes the checksum covers per row.
// Only the low byte of size selects the depth; codes above 3 count as 32-bit.
func BytesPerLine(width, size int) int {
	depth := size & 0xFF
	if depth > depth32 {
		depth = depth32
	}
	return (width << depth) >> 1
}

// Checksum computes the Rice CRC32 of height rows starting at mem[base].
func Checksum(mem []byte, base, width, height, size, rowStride int) uint32 {
	bytesPerLine := BytesPerLine(width, size)

	var crc uint32
	row := base
	y := height - 1
	for {
		var word uint32
		x := bytesPerLine - 4
		for {
			word = intbits.LoadWord32(mem, row+x) ^ uint32(x)
			crc = bits.RotateLeft32(crc, 4) + word
			x -= 4
			if x < 0 {
				break
			}
		}
		crc += word ^ uint32(y)
		row += rowStride
		y--
		if y < 0 {
			break
		}
	}
	return crc
}

// CI4 computes the checksum of a 4-bit color-indexed region together with
// the highest index it uses.
func CI4(mem []byte, base, width, height, rowStride int) (crc, maxIndex uint32) {
	crc = Checksum(mem, base, width, height, depth4, rowStride)
	maxIndex = cimax.CI4(mem, base, width, height, rowStride)
	return crc, maxIndex
}

// CI8 computes the checksum of an 8-bit color-indexed region together with
// the highest index it uses.
func CI8(mem []byte, base, width, height, rowStride int) (crc, maxIndex uint32) {
	crc = Checksum(mem, base, width, height, depth8, rowStride)
	maxIndex = cimax.CI8(mem, base, width, height, rowStride)
	return crc, maxIndex
}
