package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tamirms/texhash"
	"github.com/tamirms/texhash/internal/dump"
	"github.com/tamirms/texhash/internal/rice"
)

var rawOpts struct {
	width         int
	height        int
	size          int
	stride        int
	offset        int
	paletteOffset int
}

var rawCmd = &cobra.Command{
	Use:   "raw FILE",
	Short: "Checksum a texture inside a raw memory dump",
	Long: `raw maps FILE and hashes the texture found at --offset. --size is the
texel depth code (0=4-bit, 1=8-bit, 2=16-bit, 3=32-bit). When
--palette-offset is given the data is treated as color-indexed and the
palette checksum is folded into the high 32 bits.`,
	Args: cobra.ExactArgs(1),
	RunE: runRaw,
}

func init() {
	f := rawCmd.Flags()
	f.IntVar(&rawOpts.width, "width", 0, "texture width in texels")
	f.IntVar(&rawOpts.height, "height", 0, "texture height in rows")
	f.IntVar(&rawOpts.size, "size", 3, "texel depth code")
	f.IntVar(&rawOpts.stride, "stride", 0, "row stride in bytes (0 = tightly packed)")
	f.IntVar(&rawOpts.offset, "offset", 0, "byte offset of the first row")
	f.IntVar(&rawOpts.paletteOffset, "palette-offset", -1, "byte offset of the palette (-1 = none)")
	_ = rawCmd.MarkFlagRequired("width")
	_ = rawCmd.MarkFlagRequired("height")
	rootCmd.AddCommand(rawCmd)
}

func runRaw(cmd *cobra.Command, args []string) error {
	o := rawOpts
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", o.width, o.height)
	}

	d, err := dump.Open(args[0])
	if err != nil {
		return err
	}
	defer d.Close()

	if o.offset < 0 || o.offset >= d.Len() {
		return fmt.Errorf("offset %d outside dump of %d bytes", o.offset, d.Len())
	}
	if o.paletteOffset >= d.Len() {
		return fmt.Errorf("palette offset %d outside dump of %d bytes", o.paletteOffset, d.Len())
	}
	if o.stride == 0 {
		o.stride = rice.BytesPerLine(o.width, o.size)
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	mem := d.Bytes()
	t := texhash.Texture{
		Src:       texhash.At(mem, o.offset),
		Width:     o.width,
		Height:    o.height,
		Size:      o.size,
		RowStride: o.stride,
	}
	if o.paletteOffset >= 0 {
		t.Palette = texhash.At(mem, o.paletteOffset)
	}
	sum := s.hasher.Checksum(s.engine, t)

	log.Debug("hashed dump region",
		zap.String("path", args[0]),
		zap.Int("offset", o.offset),
		zap.Int("palette_offset", o.paletteOffset),
		zap.Int("stride", o.stride),
		zap.Stringer("engine", s.engine),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "%016x  %s\n", sum, args[0])
	return nil
}
