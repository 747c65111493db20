package mterm

import "testing"

func TestTickResultString(t *testing.T) {
	if Continue.String() != "Continue" || Stop.String() != "Stop" {
		t.Error("unexpected TickResult names")
	}
	if TickResult(99).String() != "Unknown" {
		t.Error("unexpected name for out-of-range TickResult")
	}
}

func TestPresentResultString(t *testing.T) {
	if Changed.String() != "Changed" || NoChanges.String() != "NoChanges" {
		t.Error("unexpected PresentResult names")
	}
}

// newPresentInput builds a PresentInput with standalone planes for testing.
func newPresentInput(width, height int) PresentInput {
	size := width * height
	return PresentInput{
		Width:  width,
		Height: height,
		Fore:   make([]uint32, size),
		Back:   make([]uint32, size),
		Text:   make([]uint32, size),
	}
}

func TestBlit(t *testing.T) {
	out := newPresentInput(6, 4)
	img := NewImage(2, 2)
	img.DrawRectFilled(Pt(0, 0), 2, 2, Ch('X', Red, Blue))

	out.Blit(Pt(3, 1), img.Width, img.Height, img)

	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			inside := x >= 3 && x < 5 && y >= 1 && y < 3
			i := y*6 + x
			if inside {
				if out.Text[i] != 'X' || out.Fore[i] != Red || out.Back[i] != Blue {
					t.Errorf("cell (%d, %d) = (%#x, %#x, %d)", x, y, out.Fore[i], out.Back[i], out.Text[i])
				}
			} else if out.Text[i] != 0 {
				t.Errorf("cell (%d, %d) written outside blit", x, y)
			}
		}
	}
}

func TestBlitClipsNegativeOrigin(t *testing.T) {
	out := newPresentInput(4, 4)
	img := NewImage(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			// Give each source cell a distinct code so clipping offsets show up.
			img.DrawChar(Pt(x, y), Ch(byte('a'+y*3+x), White, Black))
		}
	}

	out.Blit(Pt(-1, -1), img.Width, img.Height, img)

	// The top-left source cell is clipped away; destination (0,0) gets the
	// source cell (1,1).
	want := [][]byte{
		{'e', 'f', 0, 0},
		{'h', 'i', 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	for y := range want {
		for x, code := range want[y] {
			if out.Text[y*4+x] != uint32(code) {
				t.Errorf("cell (%d, %d) = %d, want %d", x, y, out.Text[y*4+x], code)
			}
		}
	}
}

func TestBlitClipsRightBottom(t *testing.T) {
	out := newPresentInput(3, 3)
	img := NewImage(3, 3)
	img.DrawRectFilled(Pt(0, 0), 3, 3, Ch('o', White, Black))

	out.Blit(Pt(2, 2), img.Width, img.Height, img)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			i := y*3 + x
			if x == 2 && y == 2 {
				if out.Text[i] != 'o' {
					t.Errorf("corner cell not blitted")
				}
			} else if out.Text[i] != 0 {
				t.Errorf("cell (%d, %d) written outside blit", x, y)
			}
		}
	}
}

func TestBlitFullyOutside(t *testing.T) {
	out := newPresentInput(3, 3)
	img := NewImage(2, 2)
	img.DrawRectFilled(Pt(0, 0), 2, 2, Ch('x', White, Black))

	out.Blit(Pt(5, 0), img.Width, img.Height, img)
	out.Blit(Pt(0, -4), img.Width, img.Height, img)

	for i, code := range out.Text {
		if code != 0 {
			t.Errorf("unexpected write at index %d", i)
		}
	}
}

func TestBlitScreen(t *testing.T) {
	out := newPresentInput(3, 2)
	img := NewImage(3, 2)
	img.Clear(Green, Black)

	out.BlitScreen(img)

	for i := range out.Text {
		if out.Text[i] != ' ' || out.Fore[i] != Green {
			t.Errorf("cell %d = (%#x, %d)", i, out.Fore[i], out.Text[i])
		}
	}
}
