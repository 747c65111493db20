package mterm

import (
	"time"

	"github.com/gogpu/gpucontext"
)

// App is implemented by applications hosted in an mterm window.
//
// Tick is called once per frame with input and timing information. It runs
// the application's logic and tells the main loop whether to keep going.
//
// Present is called when the window needs redrawing. The PresentInput
// exposes the three presentation planes; mutate them (directly or by
// blitting an Image) to change what appears in the window. Return NoChanges
// to skip the GPU upload and draw for that frame.
type App interface {
	Tick(in TickInput) TickResult
	Present(out PresentInput) PresentResult
}

// TickResult tells the main loop whether to keep ticking.
type TickResult int

const (
	// Continue instructs the main loop to keep ticking.
	Continue TickResult = iota
	// Stop instructs the main loop to stop and exit the application.
	Stop
)

// String returns the result name for diagnostics.
func (r TickResult) String() string {
	switch r {
	case Continue:
		return "Continue"
	case Stop:
		return "Stop"
	default:
		return "Unknown"
	}
}

// PresentResult tells the main loop whether the planes were written to.
type PresentResult int

const (
	// Changed marks the planes as modified; the window will be redrawn.
	Changed PresentResult = iota
	// NoChanges skips the redraw for this frame.
	NoChanges
)

// String returns the result name for diagnostics.
func (r PresentResult) String() string {
	switch r {
	case Changed:
		return "Changed"
	case NoChanges:
		return "NoChanges"
	default:
		return "Unknown"
	}
}

// KeyState reports a key press along with the modifier state that
// accompanied it. Key is only meaningful for the frame the event arrived on.
type KeyState struct {
	// Pressed is true when a key event arrived this frame.
	Pressed bool
	// Key is the key code for the event, or 0 when no key event arrived.
	Key gpucontext.Key
	// Mods is the modifier bitmask delivered with the event.
	Mods gpucontext.Modifiers
}

// MouseState reports the pointer position and button state.
type MouseState struct {
	// OnWindow is true while the pointer is over the application window.
	OnWindow bool
	// PrimaryPressed and SecondaryPressed report button clicks.
	PrimaryPressed   bool
	SecondaryPressed bool
	// X and Y are pixel coordinates relative to the window's top left.
	X, Y int
}

// TickInput carries per-frame information into App.Tick.
type TickInput struct {
	// Dt is the time elapsed since the previous tick.
	Dt time.Duration
	// Width and Height are the current window size in character cells.
	Width, Height int
	// Key holds the key event for this frame, if any.
	Key KeyState
	// Mouse holds pointer information when available.
	Mouse *MouseState
}

// PresentInput exposes the presentation planes to App.Present. Each plane
// has Width*Height entries, one per character cell: Fore holds ink colours,
// Back holds paper colours and Text holds glyph codes (low 8 bits).
type PresentInput struct {
	Width  int
	Height int
	Fore   []uint32
	Back   []uint32
	Text   []uint32
}

// Blit copies an image into the planes with the top-left corner at p,
// clipped to both the image and the planes.
func (in *PresentInput) Blit(p Point, width, height int, img *Image) {
	ops := blitOps{
		src:     blitRect{0, 0, img.Width, img.Height},
		dst:     blitRect{0, 0, in.Width, in.Height},
		srcBlit: blitRect{0, 0, img.Width, img.Height},
		dstBlit: blitRect{p.X, p.Y, width, height},
	}
	blitPlane(img.Fore, in.Fore, ops)
	blitPlane(img.Back, in.Back, ops)
	blitPlane(img.Text, in.Text, ops)
}

// BlitScreen copies an image over the whole window.
func (in *PresentInput) BlitScreen(img *Image) {
	in.Blit(Pt(0, 0), in.Width, in.Height, img)
}
