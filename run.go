package mterm

import (
	"sync"
	"time"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/Cthutu/mterm/internal/render"
)

// minCells is the smallest window size in character cells.
const minCells = 20

// Run opens the window and drives the application until it stops, the
// window is closed or Escape is pressed. Run does not return until the
// main loop ends.
func (b *Builder) Run(app App) error {
	if app == nil {
		return ErrNilApp
	}
	if b.innerWidth <= 0 || b.innerHeight <= 0 {
		return ErrInvalidDimensions
	}

	font := b.font
	if font == nil {
		font = DefaultFont()
	}
	fw := int(font.Width)
	fh := int(font.Height)

	// Snap the window to whole character cells, at least minCells each way.
	width := maxInt(minCells*fw, b.innerWidth) / fw * fw
	height := maxInt(minCells*fh, b.innerHeight) / fh * fh

	gapp := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(b.title).
		WithSize(width, height))

	var (
		mu      sync.Mutex
		pending KeyState
	)
	gapp.EventSource().OnKeyPress(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		mu.Lock()
		pending = KeyState{Pressed: true, Key: key, Mods: mods}
		mu.Unlock()
	})

	var (
		r       *render.Renderer
		stopped bool
		last    time.Time
	)
	gapp.OnDraw(func(dc *gogpu.Context) {
		if stopped {
			return
		}

		sw, sh := dc.SurfaceSize()
		if sw <= 0 || sh <= 0 {
			return
		}

		if r == nil {
			provider := gapp.GPUContextProvider()
			if provider == nil {
				return
			}
			format := gputypes.TextureFormatBGRA8Unorm
			if f := provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
				format = f
			}
			var err error
			r, err = render.NewWithProvider(provider, render.Config{
				FontWidth:    font.Width,
				FontHeight:   font.Height,
				FontPixels:   font.Data,
				PixelWidth:   uint32(sw),
				PixelHeight:  uint32(sh),
				TargetFormat: format,
			})
			if err != nil {
				Logger().Warn("mterm: renderer init failed", "error", err)
				stopped = true
				requestClose(gapp)
				return
			}
		}

		if err := r.Resize(uint32(sw), uint32(sh)); err != nil {
			Logger().Warn("mterm: resize failed", "error", err)
			return
		}
		cols, rows := r.Size()

		mu.Lock()
		key := pending
		pending = KeyState{}
		mu.Unlock()

		if key.Pressed && key.Key == gpucontext.KeyEscape {
			stopped = true
			requestClose(gapp)
			return
		}

		now := time.Now()
		var dt time.Duration
		if !last.IsZero() {
			dt = now.Sub(last)
		}
		last = now

		if app.Tick(TickInput{Dt: dt, Width: cols, Height: rows, Key: key}) == Stop {
			stopped = true
			requestClose(gapp)
			return
		}

		fore, back, text := r.Images()
		result := app.Present(PresentInput{
			Width:  cols,
			Height: rows,
			Fore:   fore,
			Back:   back,
			Text:   text,
		})
		if result == NoChanges {
			return
		}

		if err := r.Render(dc.SurfaceView()); err != nil {
			Logger().Warn("mterm: render failed", "error", err)
		}
	})

	gapp.OnClose(func() {
		if r != nil {
			r.Destroy()
			r = nil
		}
	})

	return gapp.Run()
}

// requestClose asks the windowing layer to shut the window when it exposes
// a close hook; otherwise the loop simply stops presenting.
func requestClose(a any) {
	if c, ok := a.(interface{ RequestClose() }); ok {
		c.RequestClose()
		return
	}
	if c, ok := a.(interface{ Quit() }); ok {
		c.Quit()
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
