package mterm

import "testing"

func TestNewImage(t *testing.T) {
	img := NewImage(10, 5)
	if img.Width != 10 || img.Height != 5 {
		t.Errorf("size = (%d, %d), want (10, 5)", img.Width, img.Height)
	}
	if len(img.Fore) != 50 || len(img.Back) != 50 || len(img.Text) != 50 {
		t.Errorf("plane lengths = (%d, %d, %d), want 50 each",
			len(img.Fore), len(img.Back), len(img.Text))
	}
}

func TestCoordsToIndex(t *testing.T) {
	img := NewImage(10, 5)
	tests := []struct {
		x, y  int
		index int
		ok    bool
	}{
		{0, 0, 0, true},
		{9, 4, 49, true},
		{3, 2, 23, true},
		{-1, 0, 0, false},
		{0, -1, 0, false},
		{10, 0, 0, false},
		{0, 5, 0, false},
	}
	for _, tt := range tests {
		i, ok := img.CoordsToIndex(tt.x, tt.y)
		if i != tt.index || ok != tt.ok {
			t.Errorf("CoordsToIndex(%d, %d) = (%d, %v), want (%d, %v)",
				tt.x, tt.y, i, ok, tt.index, tt.ok)
		}
	}
}

func TestDrawChar(t *testing.T) {
	img := NewImage(4, 4)
	img.DrawChar(Pt(2, 1), Ch('A', Red, Blue))

	i := 1*4 + 2
	if img.Text[i] != 'A' || img.Fore[i] != Red || img.Back[i] != Blue {
		t.Errorf("cell = (%#x, %#x, %d)", img.Fore[i], img.Back[i], img.Text[i])
	}

	// Out of range is ignored.
	img.DrawChar(Pt(-1, 0), Ch('B', Red, Blue))
	img.DrawChar(Pt(4, 0), Ch('B', Red, Blue))
	for j, code := range img.Text {
		if j != i && code != 0 {
			t.Errorf("unexpected write at index %d", j)
		}
	}
}

func TestDrawString(t *testing.T) {
	img := NewImage(10, 3)
	img.DrawString(Pt(2, 1), "Hi", Green, Black)

	i := 1*10 + 2
	if img.Text[i] != 'H' || img.Text[i+1] != 'i' {
		t.Errorf("text = %d, %d, want 'H', 'i'", img.Text[i], img.Text[i+1])
	}
	if img.Fore[i] != Green || img.Back[i] != Black {
		t.Errorf("colours = (%#x, %#x)", img.Fore[i], img.Back[i])
	}
}

func TestDrawStringClipping(t *testing.T) {
	img := NewImage(5, 2)

	// Clipped on the right: only "abc" of "abcdef" fits from x=2.
	img.DrawString(Pt(2, 0), "abcdef", White, Black)
	if img.Text[2] != 'a' || img.Text[3] != 'b' || img.Text[4] != 'c' {
		t.Errorf("right-clipped text = %d, %d, %d", img.Text[2], img.Text[3], img.Text[4])
	}

	// Clipped on the left: the string starts off-screen, visible part begins
	// partway through.
	img.DrawString(Pt(-2, 1), "abcdef", White, Black)
	want := []byte{'c', 'd', 'e', 'f', 0}
	for x, code := range want {
		if img.Text[1*5+x] != uint32(code) {
			t.Errorf("left-clipped cell %d = %d, want %d", x, img.Text[1*5+x], code)
		}
	}

}

func TestDrawStringOffScreenRow(t *testing.T) {
	img := NewImage(5, 2)

	// Rows above and below the image are clipped away entirely; no edge
	// row may pick the text up.
	img.DrawString(Pt(0, -1), "abc", White, Black)
	img.DrawString(Pt(0, 2), "abc", White, Black)
	img.DrawString(Pt(-10, 0), "abc", White, Black)
	img.DrawString(Pt(5, 1), "abc", White, Black)

	for i, code := range img.Text {
		if code != 0 {
			t.Errorf("cell %d = %d, want untouched", i, code)
		}
	}
}

func TestDrawStringUnmappableRune(t *testing.T) {
	img := NewImage(5, 1)
	img.DrawString(Pt(0, 0), "a世b", White, Black)
	if img.Text[0] != 'a' || img.Text[1] != '?' || img.Text[2] != 'b' {
		t.Errorf("text = %d, %d, %d, want 'a', '?', 'b'", img.Text[0], img.Text[1], img.Text[2])
	}
}

func TestDrawStringCodePage437(t *testing.T) {
	img := NewImage(3, 1)
	// Box-drawing and block characters map into the high half of CP437.
	img.DrawString(Pt(0, 0), "█─│", White, Black)
	want := []uint32{0xdb, 0xc4, 0xb3}
	for x, code := range want {
		if img.Text[x] != code {
			t.Errorf("cell %d = %#x, want %#x", x, img.Text[x], code)
		}
	}
}

func TestClear(t *testing.T) {
	img := NewImage(3, 3)
	img.Clear(Yellow, Magenta)
	for i := range img.Text {
		if img.Text[i] != ' ' || img.Fore[i] != Yellow || img.Back[i] != Magenta {
			t.Fatalf("cell %d = (%#x, %#x, %d)", i, img.Fore[i], img.Back[i], img.Text[i])
		}
	}
}

func TestDrawRectFilled(t *testing.T) {
	img := NewImage(6, 6)
	img.DrawRectFilled(Pt(1, 1), 3, 2, Ch('#', Red, Black))

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			inside := x >= 1 && x < 4 && y >= 1 && y < 3
			i := y*6 + x
			if inside && img.Text[i] != '#' {
				t.Errorf("cell (%d, %d) not filled", x, y)
			}
			if !inside && img.Text[i] != 0 {
				t.Errorf("cell (%d, %d) written outside rectangle", x, y)
			}
		}
	}
}

func TestDrawRectFilledClipping(t *testing.T) {
	img := NewImage(4, 4)
	img.DrawRectFilled(Pt(-2, -2), 4, 4, Ch('x', White, Black))

	// Only the 2x2 overlap at the origin is written.
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			inside := x < 2 && y < 2
			i := y*4 + x
			if inside && img.Text[i] != 'x' {
				t.Errorf("cell (%d, %d) not filled", x, y)
			}
			if !inside && img.Text[i] != 0 {
				t.Errorf("cell (%d, %d) written outside clip", x, y)
			}
		}
	}

	// Fully outside rectangles do nothing.
	img2 := NewImage(4, 4)
	img2.DrawRectFilled(Pt(10, 10), 3, 3, Ch('x', White, Black))
	img2.DrawRectFilled(Pt(-5, 0), 3, 3, Ch('x', White, Black))
	for i, code := range img2.Text {
		if code != 0 {
			t.Errorf("unexpected write at index %d", i)
		}
	}
}

func TestDrawRect(t *testing.T) {
	img := NewImage(5, 4)
	img.DrawRect(Pt(0, 0), 5, 4, Ch('*', White, Black))

	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			border := x == 0 || x == 4 || y == 0 || y == 3
			i := y*5 + x
			if border && img.Text[i] != '*' {
				t.Errorf("border cell (%d, %d) not drawn", x, y)
			}
			if !border && img.Text[i] != 0 {
				t.Errorf("interior cell (%d, %d) written", x, y)
			}
		}
	}
}

func TestDrawRectThinDegeneratesToFilled(t *testing.T) {
	img := NewImage(5, 5)
	img.DrawRect(Pt(0, 0), 5, 2, Ch('-', White, Black))
	for y := 0; y < 2; y++ {
		for x := 0; x < 5; x++ {
			if img.Text[y*5+x] != '-' {
				t.Errorf("cell (%d, %d) not filled", x, y)
			}
		}
	}
}
