// Package texconv packs decoded images into the texel layouts the checksum
// engines hash: 32-bit RGBA, 16-bit RGBA4 / RGB5A1 / RGB565, and 8- or 4-bit
// color-indexed texels with a 16-bit RGBA5551 palette.
package texconv

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	texerrors "github.com/tamirms/texhash/errors"
)

// Format is a packed texel layout.
type Format uint8

const (
	RGBA8 Format = iota
	RGBA4
	RGB5A1
	RGB565
	CI8
	CI4
)

var formatNames = [...]string{"rgba8", "rgba4", "rgb5a1", "rgb565", "ci8", "ci4"}

// String returns the format name accepted by ParseFormat.
func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ParseFormat maps a format name to its Format.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if n == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", texerrors.ErrUnsupportedFormat, name)
}

// Depth returns the depth code (0=4-bit .. 3=32-bit) of f.
func (f Format) Depth() int {
	switch f {
	case RGBA8:
		return 3
	case CI8:
		return 1
	case CI4:
		return 0
	default:
		return 2
	}
}

// Indexed reports whether f stores palette indices.
func (f Format) Indexed() bool {
	return f == CI8 || f == CI4
}

// RowBytes returns the tight row size of a width-texel row in f.
func (f Format) RowBytes(width int) int {
	switch f.Depth() {
	case 0:
		return (width + 1) / 2
	case 1:
		return width
	case 2:
		return width * 2
	default:
		return width * 4
	}
}

// PaletteBytes returns the size of a full palette for f: 2 bytes for every
// index the depth can address. Direct-color formats have no palette.
func (f Format) PaletteBytes() int {
	switch f {
	case CI8:
		return 256 * 2
	case CI4:
		return 16 * 2
	default:
		return 0
	}
}

// Packed describes a texture written by Pack. Pix and Palette alias the
// buffers passed to Pack.
type Packed struct {
	Pix       []byte
	Palette   []byte
	Width     int
	Height    int
	RowStride int
	Format    Format
}

// Pack writes img into pix in format f, and for indexed formats its palette
// into pal. Rows are tightly packed. Indexed formats require an
// *image.Paletted whose palette fits the index depth.
func Pack(img image.Image, f Format, pix, pal []byte) (Packed, error) {
	b := img.Bounds()
	p := Packed{
		Width:     b.Dx(),
		Height:    b.Dy(),
		RowStride: f.RowBytes(b.Dx()),
		Format:    f,
	}
	need := p.RowStride * p.Height
	if need > len(pix) {
		return Packed{}, fmt.Errorf("%w: %dx%d %s needs %d bytes, have %d",
			texerrors.ErrImageTooLarge, p.Width, p.Height, f, need, len(pix))
	}
	p.Pix = pix[:need]

	if !f.Indexed() {
		packDirect(img, f, p)
		return p, nil
	}

	paletted, ok := img.(*image.Paletted)
	if !ok {
		return Packed{}, fmt.Errorf("%w: got %T", texerrors.ErrPaletteRequired, img)
	}
	if len(paletted.Palette)*2 > f.PaletteBytes() {
		return Packed{}, fmt.Errorf("%w: %d colors do not fit %s",
			texerrors.ErrUnsupportedFormat, len(paletted.Palette), f)
	}
	if len(pal) < f.PaletteBytes() {
		return Packed{}, fmt.Errorf("%w: palette needs %d bytes, have %d",
			texerrors.ErrImageTooLarge, f.PaletteBytes(), len(pal))
	}
	p.Palette = pal[:f.PaletteBytes()]
	clear(p.Palette)
	for i, c := range paletted.Palette {
		binary.LittleEndian.PutUint16(p.Palette[i*2:], rgb5a1(color.NRGBAModel.Convert(c).(color.NRGBA)))
	}
	packIndexed(paletted, f, p)
	return p, nil
}

func packDirect(img image.Image, f Format, p Packed) {
	b := img.Bounds()
	for y := 0; y < p.Height; y++ {
		row := p.Pix[y*p.RowStride:]
		for x := 0; x < p.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			switch f {
			case RGBA8:
				row[x*4+0] = c.R
				row[x*4+1] = c.G
				row[x*4+2] = c.B
				row[x*4+3] = c.A
			case RGBA4:
				binary.LittleEndian.PutUint16(row[x*2:], rgba4(c))
			case RGB5A1:
				binary.LittleEndian.PutUint16(row[x*2:], rgb5a1(c))
			case RGB565:
				binary.LittleEndian.PutUint16(row[x*2:], rgb565(c))
			}
		}
	}
}

func packIndexed(img *image.Paletted, f Format, p Packed) {
	b := img.Bounds()
	for y := 0; y < p.Height; y++ {
		row := p.Pix[y*p.RowStride : (y+1)*p.RowStride]
		if f == CI8 {
			for x := 0; x < p.Width; x++ {
				row[x] = img.ColorIndexAt(b.Min.X+x, b.Min.Y+y)
			}
			continue
		}
		clear(row)
		for x := 0; x < p.Width; x++ {
			idx := img.ColorIndexAt(b.Min.X+x, b.Min.Y+y) & 0xF
			if x%2 == 0 {
				row[x/2] |= idx << 4
			} else {
				row[x/2] |= idx
			}
		}
	}
}

func rgba4(c color.NRGBA) uint16 {
	return uint16(c.R>>4)<<12 | uint16(c.G>>4)<<8 | uint16(c.B>>4)<<4 | uint16(c.A>>4)
}

func rgb5a1(c color.NRGBA) uint16 {
	v := uint16(c.R>>3)<<11 | uint16(c.G>>3)<<6 | uint16(c.B>>3)<<1
	if c.A >= 0x80 {
		v |= 1
	}
	return v
}

func rgb565(c color.NRGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}
