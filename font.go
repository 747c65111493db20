package mterm

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	// Registered decoders for font atlas images.
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// Font holds the pixel data for a glyph atlas: a 16x16 grid of equally
// sized glyph cells, one per 8-bit glyph code. Data is one packed RGBA
// texel per pixel (0xAABBGGRR), row-major over the whole atlas.
type Font struct {
	// Width and Height are the size of a single glyph cell in pixels.
	Width  uint32
	Height uint32
	// Data is the full atlas image, 16*Width x 16*Height texels.
	Data []uint32
}

// LoadFontImage decodes an image containing a 16x16 glyph grid and returns
// the font. PNG and BMP are supported. Returns ErrBadFont when the data
// cannot be decoded or a glyph cell dimension rounds to zero.
func LoadFontImage(data []byte) (*Font, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFont, err)
	}
	return fontFromImage(img)
}

// fontFromImage converts a decoded image into a Font.
func fontFromImage(img image.Image) (*Font, error) {
	bounds := img.Bounds()
	charWidth := uint32(bounds.Dx()) / 16
	charHeight := uint32(bounds.Dy()) / 16
	if charWidth == 0 || charHeight == 0 {
		return nil, fmt.Errorf("%w: atlas %dx%d smaller than glyph grid", ErrBadFont, bounds.Dx(), bounds.Dy())
	}

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	width := int(charWidth) * 16
	height := int(charHeight) * 16
	data := make([]uint32, width*height)
	for y := 0; y < height; y++ {
		row := rgba.Pix[y*rgba.Stride:]
		for x := 0; x < width; x++ {
			p := row[x*4 : x*4+4]
			data[y*width+x] = uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24
		}
	}

	return &Font{Width: charWidth, Height: charHeight, Data: data}, nil
}

// DefaultFont returns the built-in 8x8 font. Glyphs cover ASCII 32..126;
// all other codes render blank.
func DefaultFont() *Font {
	const cw, ch = 8, 8
	width := cw * 16
	height := ch * 16
	data := make([]uint32, width*height)

	for code := 32; code < 127; code++ {
		glyph := font8x8[code-32]
		gx := (code % 16) * cw
		gy := (code / 16) * ch
		for row := 0; row < ch; row++ {
			bits := glyph[row]
			for col := 0; col < cw; col++ {
				if bits&(1<<uint(col)) != 0 {
					data[(gy+row)*width+gx+col] = 0xffffffff
				}
			}
		}
	}

	return &Font{Width: cw, Height: ch, Data: data}
}
