package mterm

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func TestDefaultFont(t *testing.T) {
	font := DefaultFont()
	if font.Width != 8 || font.Height != 8 {
		t.Fatalf("glyph size = (%d, %d), want (8, 8)", font.Width, font.Height)
	}
	if len(font.Data) != 128*128 {
		t.Fatalf("atlas length = %d, want %d", len(font.Data), 128*128)
	}

	// The space glyph is blank.
	if !glyphBlank(font, ' ') {
		t.Error("space glyph should be blank")
	}
	// Codes outside 32..126 are blank.
	if !glyphBlank(font, 0) || !glyphBlank(font, 127) || !glyphBlank(font, 200) {
		t.Error("codes without glyphs should be blank")
	}
	// Printable glyphs have set pixels.
	for _, code := range []byte{'A', 'a', '0', '#', '~'} {
		if glyphBlank(font, code) {
			t.Errorf("glyph %q should have set pixels", code)
		}
	}
}

// glyphBlank reports whether every pixel of a glyph cell is zero.
func glyphBlank(font *Font, code byte) bool {
	atlasW := int(font.Width) * 16
	gx := int(code%16) * int(font.Width)
	gy := int(code/16) * int(font.Height)
	for y := 0; y < int(font.Height); y++ {
		for x := 0; x < int(font.Width); x++ {
			if font.Data[(gy+y)*atlasW+gx+x] != 0 {
				return false
			}
		}
	}
	return true
}

// testAtlasImage draws a 16x16 glyph grid where only the cell for 'A' is
// filled white.
func testAtlasImage(cw, ch int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cw*16, ch*16))
	gx := int('A'%16) * cw
	gy := int('A'/16) * ch
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			img.Set(gx+x, gy+y, color.RGBA{255, 255, 255, 255})
		}
	}
	return img
}

func TestLoadFontImagePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testAtlasImage(6, 10)); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}

	font, err := LoadFontImage(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadFontImage failed: %v", err)
	}
	if font.Width != 6 || font.Height != 10 {
		t.Errorf("glyph size = (%d, %d), want (6, 10)", font.Width, font.Height)
	}
	if len(font.Data) != 96*160 {
		t.Errorf("atlas length = %d, want %d", len(font.Data), 96*160)
	}
	if glyphBlank(font, 'A') {
		t.Error("glyph 'A' should have set pixels")
	}
	if !glyphBlank(font, 'B') {
		t.Error("glyph 'B' should be blank")
	}

	// A set pixel decodes to an opaque white texel.
	atlasW := 96
	gx := int('A'%16) * 6
	gy := int('A'/16) * 10
	if got := font.Data[gy*atlasW+gx]; got != 0xffffffff {
		t.Errorf("set texel = %#x, want 0xffffffff", got)
	}
}

func TestLoadFontImageBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testAtlasImage(8, 8)); err != nil {
		t.Fatalf("bmp.Encode failed: %v", err)
	}

	font, err := LoadFontImage(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadFontImage failed: %v", err)
	}
	if font.Width != 8 || font.Height != 8 {
		t.Errorf("glyph size = (%d, %d), want (8, 8)", font.Width, font.Height)
	}
	if glyphBlank(font, 'A') {
		t.Error("glyph 'A' should have set pixels")
	}
}

func TestLoadFontImageErrors(t *testing.T) {
	if _, err := LoadFontImage([]byte("not an image")); !errors.Is(err, ErrBadFont) {
		t.Errorf("undecodable data: err = %v, want ErrBadFont", err)
	}

	// An atlas smaller than the 16x16 grid has zero-sized glyph cells.
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	if _, err := LoadFontImage(buf.Bytes()); !errors.Is(err, ErrBadFont) {
		t.Errorf("undersized atlas: err = %v, want ErrBadFont", err)
	}
}
