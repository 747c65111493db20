package mterm

import "golang.org/x/text/encoding/charmap"

// Point is an X, Y coordinate in character cells.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Char is a single character with an associated ink and paper colour.
type Char struct {
	Code  byte
	Ink   uint32
	Paper uint32
}

// Ch is shorthand for Char{Code: code, Ink: ink, Paper: paper}.
func Ch(code byte, ink, paper uint32) Char {
	return Char{Code: code, Ink: ink, Paper: paper}
}

// Image is a rectangular grid of characters used to compose sprites and
// screens before blitting them to the presentation planes. The three planes
// hold, per cell, the ink colour, the paper colour and the glyph code (only
// the low 8 bits of the glyph value are rendered; higher bits are reserved).
type Image struct {
	Width  int
	Height int
	Fore   []uint32
	Back   []uint32
	Text   []uint32
}

// NewImage creates a cleared image of the given size in cells.
func NewImage(width, height int) *Image {
	size := width * height
	return &Image{
		Width:  width,
		Height: height,
		Fore:   make([]uint32, size),
		Back:   make([]uint32, size),
		Text:   make([]uint32, size),
	}
}

// CoordsToIndex converts a cell coordinate to a plane index.
// The second return value is false when the coordinate is out of range.
func (img *Image) CoordsToIndex(x, y int) (int, bool) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return 0, false
	}
	return y*img.Width + x, true
}

// clip clamps a rectangle to the image bounds. Negative origins shrink the
// rectangle and move the origin to the edge.
func (img *Image) clip(p Point, width, height int) (x, y, w, h int) {
	x, y, w, h = p.X, p.Y, width, height
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if w > img.Width-x {
		w = img.Width - x
	}
	if h > img.Height-y {
		h = img.Height - y
	}
	return x, y, w, h
}

// Clear fills the whole image with spaces in the given colours.
func (img *Image) Clear(ink, paper uint32) {
	img.DrawRectFilled(Pt(0, 0), img.Width, img.Height, Ch(' ', ink, paper))
}

// DrawChar places a single character. Out-of-range coordinates are ignored.
func (img *Image) DrawChar(p Point, ch Char) {
	if i, ok := img.CoordsToIndex(p.X, p.Y); ok {
		img.Fore[i] = ch.Ink
		img.Back[i] = ch.Paper
		img.Text[i] = uint32(ch.Code)
	}
}

// DrawString writes a single row of text, clipped to the image. Runes are
// mapped to glyph codes through code page 437; unmappable runes render as
// '?'.
func (img *Image) DrawString(p Point, text string, ink, paper uint32) {
	codes := encodeString(text)
	x, y, w, h := img.clip(p, len(codes), 1)
	if w <= 0 || h <= 0 {
		return
	}
	i, ok := img.CoordsToIndex(x, y)
	if !ok {
		return
	}
	skip := x - p.X
	for j := 0; j < w; j++ {
		img.Fore[i+j] = ink
		img.Back[i+j] = paper
		img.Text[i+j] = uint32(codes[skip+j])
	}
}

// DrawRect draws a rectangle outline. Rectangles thinner than 3 cells in
// either direction degenerate to a filled rectangle.
func (img *Image) DrawRect(p Point, width, height int, ch Char) {
	if width < 3 || height < 3 {
		img.DrawRectFilled(p, width, height, ch)
		return
	}
	img.DrawRectFilled(p, width, 1, ch)
	img.DrawRectFilled(Pt(p.X, p.Y+height-1), width, 1, ch)
	img.DrawRectFilled(Pt(p.X, p.Y+1), 1, height-2, ch)
	img.DrawRectFilled(Pt(p.X+width-1, p.Y+1), 1, height-2, ch)
}

// DrawRectFilled fills a rectangle, clipped to the image.
func (img *Image) DrawRectFilled(p Point, width, height int, ch Char) {
	x, y, w, h := img.clip(p, width, height)
	if w <= 0 || h <= 0 {
		return
	}
	i, ok := img.CoordsToIndex(x, y)
	if !ok {
		return
	}
	for row := 0; row < h; row++ {
		for j := 0; j < w; j++ {
			img.Fore[i+j] = ch.Ink
			img.Back[i+j] = ch.Paper
			img.Text[i+j] = uint32(ch.Code)
		}
		i += img.Width
	}
}

// encodeString maps a Go string to 8-bit glyph codes via code page 437.
func encodeString(s string) []byte {
	codes := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.CodePage437.EncodeRune(r)
		if !ok {
			b = '?'
		}
		codes = append(codes, b)
	}
	return codes
}

// blitRect is a rectangle used during blit clipping.
type blitRect struct {
	x, y, w, h int
}

// blitOps describes a clipped copy between two cell grids. The src and dst
// rectangles are the full plane sizes (origin always 0,0); srcBlit and
// dstBlit are the regions taking part in the copy.
type blitOps struct {
	src     blitRect
	dst     blitRect
	srcBlit blitRect
	dstBlit blitRect
}

// blitPlane copies one plane according to ops, clipping the source region to
// its plane and the destination region to the destination plane edges.
func blitPlane(src, dst []uint32, ops blitOps) {
	sx, sy := ops.srcBlit.x, ops.srcBlit.y
	sw, sh := ops.srcBlit.w, ops.srcBlit.h
	dx, dy := ops.dstBlit.x, ops.dstBlit.y
	dw, dh := ops.dstBlit.w, ops.dstBlit.h

	// A destination origin off the left edge shrinks both regions and moves
	// the origin to the edge.
	if dx < 0 {
		sw += dx
		dw += dx
		sx -= dx
		dx = 0
	}
	if sx+sw > ops.src.w {
		sw = ops.src.w - sx
	}
	if dx+dw > ops.dst.w {
		dw = ops.dst.w - dx
	}
	width := min(sw, dw)

	// Same for the Y axis.
	if dy < 0 {
		sh += dy
		dh += dy
		sy -= dy
		dy = 0
	}
	if sy+sh > ops.src.h {
		sh = ops.src.h - sy
	}
	if dy+dh > ops.dst.h {
		dh = ops.dst.h - dy
	}
	height := min(sh, dh)

	if width <= 0 || height <= 0 {
		return
	}

	si := sy*ops.src.w + sx
	di := dy*ops.dst.w + dx
	for row := 0; row < height; row++ {
		copy(dst[di:di+width], src[si:si+width])
		si += ops.src.w
		di += ops.dst.w
	}
}
