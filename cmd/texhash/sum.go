package main

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/cespare/xxhash/v2"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tamirms/texhash"
	"github.com/tamirms/texhash/internal/texconv"
)

var (
	sumFormat   string
	sumResize   string
	sumManifest bool
)

var sumCmd = &cobra.Command{
	Use:   "sum FILE...",
	Short: "Print the composite checksum of image files",
	Long: `sum decodes each image (png, jpeg, gif, bmp, tiff or webp), packs it into
texture memory in the chosen texel format and prints its 64-bit composite
checksum. Indexed formats (ci8, ci4) need paletted images such as gif or
palette png.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSum,
}

func init() {
	sumCmd.Flags().StringVarP(&sumFormat, "format", "f", "rgba8", "texel format: rgba8, rgba4, rgb5a1, rgb565, ci8 or ci4")
	sumCmd.Flags().StringVar(&sumResize, "resize", "", "resize to WxH before packing (0 keeps the aspect ratio)")
	sumCmd.Flags().BoolVar(&sumManifest, "manifest", false, "print an xxh64 digest of the listing")
	rootCmd.AddCommand(sumCmd)
}

func runSum(cmd *cobra.Command, args []string) error {
	format, err := texconv.ParseFormat(sumFormat)
	if err != nil {
		return err
	}
	var resizeW, resizeH int
	if sumResize != "" {
		if format.Indexed() {
			return fmt.Errorf("--resize cannot be combined with indexed format %s", format)
		}
		if resizeW, resizeH, err = parseResize(sumResize); err != nil {
			return err
		}
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	digest := xxhash.New()
	out := io.MultiWriter(cmd.OutOrStdout(), digest)

	var failed int
	for _, path := range args {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		sum, err := s.sumImage(path, format, resizeW, resizeH)
		if err != nil {
			log.Error("cannot checksum image", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}
		fmt.Fprintf(out, "%016x  %s\n", sum, path)
	}

	if sumManifest {
		fmt.Fprintf(cmd.OutOrStdout(), "%016x  (manifest)\n", digest.Sum64())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func (s *session) sumImage(path string, format texconv.Format, resizeW, resizeH int) (uint64, error) {
	start := time.Now()
	img, err := decodeImage(path)
	if err != nil {
		return 0, err
	}
	if resizeW > 0 || resizeH > 0 {
		img = imaging.Resize(img, resizeW, resizeH, imaging.Lanczos)
	}

	// Palettes go to the second scratch slot of the hashing thread; the
	// strong engine only gathers into the first.
	pal, err := s.pool.ThreadBuffer(0, 1, format.PaletteBytes())
	if err != nil {
		return 0, fmt.Errorf("palette buffer: %w", err)
	}
	packed, err := texconv.Pack(img, format, s.pool.Get(0), pal)
	if err != nil {
		return 0, err
	}
	sum := s.hasher.Checksum(s.engine, texhash.Texture{
		Src:       texhash.Bytes(packed.Pix),
		Width:     packed.Width,
		Height:    packed.Height,
		Size:      format.Depth(),
		RowStride: packed.RowStride,
		Palette:   texhash.Bytes(packed.Palette),
	})

	log.Debug("hashed image",
		zap.String("path", path),
		zap.Int("width", packed.Width),
		zap.Int("height", packed.Height),
		zap.Stringer("format", format),
		zap.Duration("elapsed", time.Since(start)),
	)
	return sum, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// parseResize parses a WxH size. One side may be 0 to keep the aspect ratio.
func parseResize(s string) (w, h int, err error) {
	var extra string
	n, _ := fmt.Sscanf(s, "%dx%d%s", &w, &h, &extra)
	if n != 2 {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	if w < 0 || h < 0 || (w == 0 && h == 0) {
		return 0, 0, errors.New("resize dimensions must be non-negative and not both zero")
	}
	return w, h, nil
}
