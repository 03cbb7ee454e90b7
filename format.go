package texhash

import (
	"fmt"

	"go.uber.org/zap"
)

// ColorFormat is the internal color format of a decoded texture.
// Values match the OpenGL sized internal format enums.
type ColorFormat uint32

const (
	FormatRGB8   ColorFormat = 0x8051 // 5-6-5 packed in 16 bits
	FormatRGBA4  ColorFormat = 0x8056
	FormatRGB5A1 ColorFormat = 0x8057
	FormatRGBA8  ColorFormat = 0x8058
	FormatCI8    ColorFormat = 0x80E5
)

// String returns the format name.
func (f ColorFormat) String() string {
	switch f {
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA4:
		return "RGBA4"
	case FormatRGB5A1:
		return "RGB5_A1"
	case FormatRGBA8:
		return "RGBA8"
	case FormatCI8:
		return "COLOR_INDEX8"
	default:
		return fmt.Sprintf("ColorFormat(0x%X)", uint32(f))
	}
}

// SizeOf returns the byte size of a width x height texture in format.
// Unsupported formats return 0 and log a debug diagnostic on zap.L().
func SizeOf(width, height int, format ColorFormat) int {
	switch format {
	case FormatCI8:
		return width * height
	case FormatRGBA4, FormatRGB5A1, FormatRGB8:
		return (width * height) << 1
	case FormatRGBA8:
		return (width * height) << 2
	default:
		zap.L().Debug("cannot get size, unsupported format", zap.Stringer("format", format))
		return 0
	}
}

// TexelFormat is the texel layout code of the source hardware. It occupies
// the high byte of the size argument taken by the checksum engines.
type TexelFormat uint8

const (
	TexelRGBA TexelFormat = 0
	TexelYUV  TexelFormat = 1
	TexelCI   TexelFormat = 2
	TexelIA   TexelFormat = 3
	TexelI    TexelFormat = 4
)

// Depth codes for the low byte of the size argument.
const (
	Depth4  = 0
	Depth8  = 1
	Depth16 = 2
	Depth32 = 3
)

// PackSize builds the engines' size argument from a texel format and a
// depth code. Only the depth selects the row width; for palette dispatch
// Depth8 picks the 8-bit indexed path and Depth4 the 4-bit one.
func PackSize(format TexelFormat, depth int) int {
	return int(format)<<8 | depth&0xFF
}
