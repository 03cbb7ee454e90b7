// Package cimax scans color-indexed texel rows for the highest palette index
// in use. The result bounds how much of the palette contributes to a texture
// checksum.
package cimax

import "slices"

const (
	// Max4 is the largest index a 4-bit texel can hold.
	Max4 = 0xF
	// Max8 is the largest index an 8-bit texel can hold.
	Max8 = 0xFF
)

// rowSpan returns the part of row y that lies inside mem.
// Bytes outside mem read as zero and can never raise the maximum.
func rowSpan(mem []byte, base, y, rowBytes, rowStride int) []byte {
	start := base + y*rowStride
	end := start + rowBytes
	start = max(start, 0)
	end = min(end, len(mem))
	if start >= end {
		return nil
	}
	return mem[start:end]
}

// CI8 returns the highest 8-bit index in a region of height rows of width
// texels. Scanning stops as soon as Max8 is seen.
func CI8(mem []byte, base, width, height, rowStride int) uint32 {
	var val byte
	for y := 0; y < height; y++ {
		row := rowSpan(mem, base, y, width, rowStride)
		if len(row) == 0 {
			continue
		}
		val = max(val, slices.Max(row))
		if val == Max8 {
			return Max8
		}
	}
	return uint32(val)
}

// CI4 returns the highest 4-bit index in a region of height rows of width
// texels packed two per byte. An odd trailing texel is not scanned.
func CI4(mem []byte, base, width, height, rowStride int) uint32 {
	var val byte
	rowBytes := width >> 1
	for y := 0; y < height; y++ {
		for _, b := range rowSpan(mem, base, y, rowBytes, rowStride) {
			val = max(val, b>>4, b&0xF)
			if val == Max4 {
				return Max4
			}
		}
	}
	return uint32(val)
}
