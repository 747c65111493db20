package render

import "math"

// This file mirrors shader.wgsl on the CPU. It serves as reference
// implementation and fallback: every coordinate and colour computed here
// matches what the GPU produces for the same inputs, which lets the grid
// compositing be verified without a device.

// Atlas is the font atlas as the shader sees it: a 16x16 grid of glyph
// cells, one packed RGBA texel (0xAABBGGRR) per pixel.
type Atlas struct {
	// CellWidth and CellHeight are the glyph cell size in pixels.
	CellWidth  uint32
	CellHeight uint32
	// Pixels is the full atlas, 16*CellWidth x 16*CellHeight, row-major.
	Pixels []uint32
}

// Grid is the CPU-side view of the three presentation planes.
type Grid struct {
	Cols, Rows int
	Fore       []uint32
	Back       []uint32
	Text       []uint32
}

// QuadCorner returns the clip-space corner emitted for vertex index i of
// the bufferless fullscreen triangle strip. The x bit comes from i&2 and
// the y bit from i&1, so indices 0..3 produce
// (-1,-1), (-1,1), (1,-1), (1,1).
func QuadCorner(index uint32) (x, y float32) {
	var bx, by float32
	if index&2 != 0 {
		bx = 1
	}
	if index&1 != 0 {
		by = 1
	}
	return 2*bx - 1, 2*by - 1
}

// cellCoords resolves a framebuffer position (pixel centers at +0.5) to its
// character cell and the pixel offset within that cell's glyph.
func cellCoords(posX, posY float32, fontW, fontH uint32) (cellX, cellY, localX, localY int32) {
	px := posX - 0.5
	py := posY - 0.5
	cellX = int32(math.Floor(float64(px) / float64(fontW)))
	cellY = int32(math.Floor(float64(py) / float64(fontH)))
	localX = int32(px) % int32(fontW)
	localY = int32(py) % int32(fontH)
	return cellX, cellY, localX, localY
}

// decodeGlyphCode recovers the 8-bit glyph code from the normalized red
// channel value of a glyph-plane texel, as the shader does.
func decodeGlyphCode(red float32) uint32 {
	return uint32(red * 255)
}

// glyphAtlasCell maps a glyph code to its cell in the 16x16 atlas grid.
func glyphAtlasCell(code uint32) (fx, fy uint32) {
	return code % 16, code / 16
}

// texelRed returns the normalized red channel of a packed RGBA texel.
func texelRed(texel uint32) float32 {
	return float32(texel&0xff) / 255
}

// selectColour picks the output colour for a pixel from its glyph coverage.
// Coverage exactly at the threshold is foreground.
func selectColour(coverage float32, fore, back uint32) uint32 {
	if coverage < 0.5 {
		return back
	}
	return fore
}

// CompositePixel runs the fragment stage for one framebuffer position and
// returns the packed RGBA output colour.
func CompositePixel(posX, posY float32, grid *Grid, atlas *Atlas) uint32 {
	cellX, cellY, localX, localY := cellCoords(posX, posY, atlas.CellWidth, atlas.CellHeight)
	if cellX < 0 || cellY < 0 || int(cellX) >= grid.Cols || int(cellY) >= grid.Rows {
		return 0
	}
	cell := int(cellY)*grid.Cols + int(cellX)

	code := decodeGlyphCode(texelRed(grid.Text[cell]))
	fx, fy := glyphAtlasCell(code)
	atlasW := int32(atlas.CellWidth) * 16
	ax := int32(fx*atlas.CellWidth) + localX
	ay := int32(fy*atlas.CellHeight) + localY
	coverage := texelRed(atlas.Pixels[ay*atlasW+ax])

	return selectColour(coverage, grid.Fore[cell], grid.Back[cell])
}

// CompositeGrid renders the whole grid on the CPU, returning one packed
// RGBA texel per framebuffer pixel. Output size is
// (Cols*CellWidth) x (Rows*CellHeight).
func CompositeGrid(grid *Grid, atlas *Atlas) []uint32 {
	w := grid.Cols * int(atlas.CellWidth)
	h := grid.Rows * int(atlas.CellHeight)
	out := make([]uint32, w*h)
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			out[py*w+px] = CompositePixel(float32(px)+0.5, float32(py)+0.5, grid, atlas)
		}
	}
	return out
}
