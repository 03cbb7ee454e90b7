// Package strong implements the collision-resistant texture checksum.
//
// The region's rows are gathered into one contiguous buffer, dropping any
// row padding, and the buffer is hashed with a 64-bit mixing hash folded to
// 32 bits. Rows narrower than a word contribute the 4 bytes ending at the
// row's last byte, matching what the Rice checksum reads for such rows.
package strong

import (
	intbits "github.com/tamirms/texhash/internal/bits"
	"github.com/tamirms/texhash/internal/cimax"
	"github.com/tamirms/texhash/internal/rice"
)

// HashFunc is a 64-bit non-cryptographic hash over a byte slice.
type HashFunc func([]byte) uint64

// minLineBytes is the narrowest row the gather step copies.
const minLineBytes = 4

// ScratchSize returns the scratch capacity Checksum needs for a region.
func ScratchSize(width, height, size, rowStride int) int {
	if height <= 0 {
		return 0
	}
	line := max(rice.BytesPerLine(width, size), rowStride, minLineBytes)
	return height * line
}

// Gather copies the covered bytes of every row into scratch and returns the
// filled prefix. scratch must hold at least ScratchSize bytes.
func Gather(scratch, mem []byte, base, width, height, size, rowStride int) []byte {
	bytesPerLine := rice.BytesPerLine(width, size)
	n := 0
	row := base
	for y := 0; y < height; y++ {
		if bytesPerLine < minLineBytes {
			intbits.CopyClamped(scratch[n:n+minLineBytes], mem, row-minLineBytes+bytesPerLine)
			n += minLineBytes
		} else {
			intbits.CopyClamped(scratch[n:n+bytesPerLine], mem, row)
			n += bytesPerLine
		}
		row += rowStride
	}
	return scratch[:n]
}

// Checksum hashes height rows starting at mem[base] using scratch as the
// gather buffer. A scratch smaller than ScratchSize is replaced by a fresh
// allocation.
func Checksum(hash HashFunc, scratch, mem []byte, base, width, height, size, rowStride int) uint32 {
	if need := ScratchSize(width, height, size, rowStride); len(scratch) < need {
		scratch = make([]byte, need)
	}
	linear := Gather(scratch, mem, base, width, height, size, rowStride)
	return intbits.Fold64(hash(linear))
}

// CI4 computes the strong checksum of a 4-bit color-indexed region together
// with the highest index it uses.
func CI4(hash HashFunc, scratch, mem []byte, base, width, height, rowStride int) (crc, maxIndex uint32) {
	crc = Checksum(hash, scratch, mem, base, width, height, 0, rowStride)
	maxIndex = cimax.CI4(mem, base, width, height, rowStride)
	return crc, maxIndex
}

// CI8 computes the strong checksum of an 8-bit color-indexed region together
// with the highest index it uses.
func CI8(hash HashFunc, scratch, mem []byte, base, width, height, rowStride int) (crc, maxIndex uint32) {
	crc = Checksum(hash, scratch, mem, base, width, height, 1, rowStride)
	maxIndex = cimax.CI8(mem, base, width, height, rowStride)
	return crc, maxIndex
}
