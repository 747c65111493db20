package mterm

import (
	"errors"
	"testing"
)

func TestNewBuilderDefaults(t *testing.T) {
	b := NewBuilder()
	if b.innerWidth != 800 || b.innerHeight != 600 {
		t.Errorf("default size = (%d, %d), want (800, 600)", b.innerWidth, b.innerHeight)
	}
	if b.title != "mterm" {
		t.Errorf("default title = %q, want %q", b.title, "mterm")
	}
	if b.font != nil {
		t.Error("default font should be nil (built-in selected at Run)")
	}
}

func TestBuilderChaining(t *testing.T) {
	font := DefaultFont()
	b := NewBuilder().
		WithInnerSize(1024, 768).
		WithTitle("rogue").
		WithFont(font)

	if b.innerWidth != 1024 || b.innerHeight != 768 {
		t.Errorf("size = (%d, %d), want (1024, 768)", b.innerWidth, b.innerHeight)
	}
	if b.title != "rogue" {
		t.Errorf("title = %q, want %q", b.title, "rogue")
	}
	if b.font != font {
		t.Error("font not stored")
	}

	b.WithFont(nil)
	if b.font != nil {
		t.Error("WithFont(nil) should restore the built-in font")
	}
}

func TestRunNilApp(t *testing.T) {
	if err := NewBuilder().Run(nil); !errors.Is(err, ErrNilApp) {
		t.Errorf("Run(nil) = %v, want ErrNilApp", err)
	}
}

type nopApp struct{}

func (nopApp) Tick(TickInput) TickResult          { return Stop }
func (nopApp) Present(PresentInput) PresentResult { return NoChanges }

func TestRunInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 600},
		{"zero height", 800, 0},
		{"negative width", -1, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder().WithInnerSize(tt.width, tt.height)
			if err := b.Run(nopApp{}); !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("Run = %v, want ErrInvalidDimensions", err)
			}
		})
	}
}
