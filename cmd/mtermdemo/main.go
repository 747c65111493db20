// Command mtermdemo shows the mterm ASCII renderer in a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Cthutu/mterm"
)

func main() {
	var (
		width   = flag.Int("width", 800, "window width in pixels")
		height  = flag.Int("height", 600, "window height in pixels")
		title   = flag.String("title", "mterm demo", "window title")
		verbose = flag.Bool("v", false, "enable log output")
	)
	flag.Parse()

	if *verbose {
		mterm.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	app := &demo{start: time.Now()}
	b := mterm.NewBuilder().
		WithInnerSize(*width, *height).
		WithTitle(*title)
	if err := b.Run(app); err != nil {
		log.Fatalf("Failed to run: %v", err)
	}
}

// demo scrolls a banner over a coloured backdrop.
type demo struct {
	start  time.Time
	frames int
	dirty  bool
}

func (d *demo) Tick(in mterm.TickInput) mterm.TickResult {
	d.frames++
	d.dirty = true
	return mterm.Continue
}

func (d *demo) Present(out mterm.PresentInput) mterm.PresentResult {
	if !d.dirty {
		return mterm.NoChanges
	}
	d.dirty = false

	img := mterm.NewImage(out.Width, out.Height)
	img.Clear(mterm.White, mterm.Black)

	// Backdrop stripes.
	colours := []uint32{mterm.Blue, mterm.Magenta, mterm.Cyan}
	for y := 0; y < out.Height; y++ {
		paper := colours[y%len(colours)]
		img.DrawRectFilled(mterm.Pt(0, y), out.Width, 1, mterm.Ch(' ', mterm.White, paper))
	}

	// Scrolling banner.
	banner := "*** mterm: GPU ASCII rendering *** "
	offset := d.frames / 4 % len(banner)
	row := out.Height / 2
	img.DrawRectFilled(mterm.Pt(0, row-1), out.Width, 3, mterm.Ch(' ', mterm.White, mterm.Black))
	img.DrawString(mterm.Pt(0, row), banner[offset:]+banner[:offset], mterm.Yellow, mterm.Black)

	// Frame stats in a box.
	elapsed := time.Since(d.start).Seconds()
	stats := fmt.Sprintf(" %d frames | %.1fs ", d.frames, elapsed)
	img.DrawRect(mterm.Pt(1, 1), len(stats)+2, 3, mterm.Ch('#', mterm.Green, mterm.Black))
	img.DrawString(mterm.Pt(2, 2), stats, mterm.Green, mterm.Black)

	out.BlitScreen(img)
	return mterm.Changed
}
