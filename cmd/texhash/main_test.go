package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"

	"github.com/tamirms/texhash"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSumMatchesLibrary(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = byte(rng.Uint32())
		img.Pix[i+1] = byte(rng.Uint32())
		img.Pix[i+2] = byte(rng.Uint32())
		img.Pix[i+3] = 0xFF
	}
	path := writePNG(t, img)

	out, err := execute(t, "sum", "--max-width=1024", "--max-height=1024", "--engine", "strong", "--algorithm", "xxh3", "--format", "rgba8", "--resize=", "--manifest", path)
	if err != nil {
		t.Fatalf("sum: %v\n%s", err, out)
	}

	want := texhash.Checksum64Strong(texhash.Bytes(img.Pix), 8, 4, texhash.Depth32, 32, texhash.Source{})
	line := fmt.Sprintf("%016x  %s\n", want, path)
	if !strings.HasPrefix(out, line) {
		t.Fatalf("output = %q, want prefix %q", out, line)
	}
	manifest := fmt.Sprintf("%016x  (manifest)\n", xxhash.Sum64String(line))
	if !strings.HasSuffix(out, manifest) {
		t.Errorf("output = %q, want manifest line %q", out, manifest)
	}
}

func TestSumPalettedCI8(t *testing.T) {
	pal := color.Palette{
		color.NRGBA{0, 0, 0, 0xFF},
		color.NRGBA{0xF8, 0, 0, 0xFF},
		color.NRGBA{0, 0xF8, 0, 0xFF},
	}
	img := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
	for i := range img.Pix {
		img.Pix[i] = uint8(i % len(pal))
	}
	path := writePNG(t, img)

	// The role buffers (8*8*4 bytes) are smaller than a full CI8 palette.
	out, err := execute(t, "sum", "--max-width=8", "--max-height=8", "--engine", "fast", "--format", "ci8", "--resize=", "--manifest=false", path)
	if err != nil {
		t.Fatalf("sum: %v\n%s", err, out)
	}

	tlut := make([]byte, 512)
	copy(tlut, []byte{0x01, 0x00, 0x01, 0xF8, 0xC1, 0x07})
	want := texhash.Checksum64(texhash.Bytes(img.Pix), 4, 4, texhash.Depth8, 4, texhash.Bytes(tlut))
	if got := fmt.Sprintf("%016x  %s\n", want, path); out != got {
		t.Errorf("output = %q, want %q", out, got)
	}
}

func TestSumReportsFailures(t *testing.T) {
	bogus := filepath.Join(t.TempDir(), "bogus.png")
	if err := os.WriteFile(bogus, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "sum", "--format", "rgba8", "--manifest=false", bogus); err == nil {
		t.Error("expected error for undecodable file")
	}
	if _, err := execute(t, "sum", "--format", "ci8", "--resize", "8x8", bogus); err == nil {
		t.Error("expected error for resize with indexed format")
	}
}

func TestRawMatchesLibrary(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	mem := make([]byte, 4096)
	for i := range mem {
		mem[i] = byte(rng.Uint32())
	}
	path := filepath.Join(t.TempDir(), "dump.bin")
	if err := os.WriteFile(path, mem, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "raw", "--engine", "fast", "--width", "16", "--height", "8",
		"--size", "1", "--stride", "32", "--offset", "100", "--palette-offset", "2048", path)
	if err != nil {
		t.Fatalf("raw: %v\n%s", err, out)
	}
	want := texhash.Checksum64(texhash.At(mem, 100), 16, 8, texhash.Depth8, 32, texhash.At(mem, 2048))
	if got := fmt.Sprintf("%016x  %s\n", want, path); out != got {
		t.Errorf("output = %q, want %q", out, got)
	}

	if _, err := execute(t, "raw", "--width", "16", "--height", "8", "--offset", "5000", "--palette-offset", "-1", path); err == nil {
		t.Error("expected error for offset outside dump")
	}
}

func TestParseResize(t *testing.T) {
	good := map[string][2]int{"64x32": {64, 32}, "0x16": {0, 16}, "128x0": {128, 0}}
	for in, want := range good {
		w, h, err := parseResize(in)
		if err != nil || w != want[0] || h != want[1] {
			t.Errorf("parseResize(%q) = %d, %d, %v; want %v", in, w, h, err, want)
		}
	}
	for _, in := range []string{"", "64", "64x", "0x0", "-1x4", "4x4x4"} {
		if _, _, err := parseResize(in); err == nil {
			t.Errorf("parseResize(%q) = nil error", in)
		}
	}
}

func TestSyntheticTextures(t *testing.T) {
	textures, total := syntheticTextures(4, 8, 2, 1)
	if len(textures) != 4 {
		t.Fatalf("got %d textures, want 4", len(textures))
	}
	if want := 2*(8*2*4) + 2*(8*2+512); total != want {
		t.Errorf("total bytes = %d, want %d", total, want)
	}
	if textures[0].Size != texhash.Depth32 || !textures[0].Palette.IsNil() {
		t.Error("even textures should be 32-bit direct color")
	}
	if textures[1].Size != texhash.Depth8 || textures[1].Palette.IsNil() {
		t.Error("odd textures should be 8-bit indexed with a palette")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "texhash "+version) {
		t.Errorf("version output = %q", out)
	}
}
