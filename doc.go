// Package mterm renders an ASCII character grid on the GPU.
//
// # Overview
//
// mterm draws a whole window of coloured text with a single GPU draw call.
// The window is divided into fixed-size character cells. Three images, one
// value per cell, describe the screen: foreground (ink) colours, background
// (paper) colours and glyph codes. A fourth image holds the font atlas, a
// 16x16 grid of glyphs. A fullscreen quad is generated in the vertex stage
// without any vertex buffers, and the fragment stage composites each pixel
// by looking up its cell, its glyph and the matching atlas texel.
//
// # Quick Start
//
//	import "github.com/Cthutu/mterm"
//
//	type game struct{}
//
//	func (g *game) Tick(in mterm.TickInput) mterm.TickResult {
//	    if in.Key.Pressed && in.Key.Key == gpucontext.KeyEscape {
//	        return mterm.Stop
//	    }
//	    return mterm.Continue
//	}
//
//	func (g *game) Present(out mterm.PresentInput) mterm.PresentResult {
//	    img := mterm.NewImage(out.Width, out.Height)
//	    img.Clear(mterm.White, mterm.Black)
//	    img.DrawString(mterm.Pt(1, 1), "Hello, world!", mterm.Green, mterm.Black)
//	    out.BlitScreen(img)
//	    return mterm.Changed
//	}
//
//	func main() {
//	    b := mterm.NewBuilder().WithTitle("demo").WithInnerSize(800, 600)
//	    if err := b.Run(&game{}); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: App, Builder, Image, Char, Point, colour helpers
//   - internal/render: wgpu HAL pipeline, grid textures, CPU reference
//     compositor
//
// # Coordinate System
//
// Cell (0,0) is the top-left character of the window. X increases right,
// Y increases down. Pixel coordinates follow the same convention.
package mterm

// Version is the current version of the library.
const Version = "0.2.0"
