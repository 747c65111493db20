package mterm

// Builder configures the window that hosts the ASCII rendering.
//
// The zero value is not useful; start from NewBuilder and chain the With
// methods:
//
//	b := mterm.NewBuilder().
//	    WithInnerSize(1024, 768).
//	    WithTitle("rogue")
//	err := b.Run(app)
type Builder struct {
	innerWidth  int
	innerHeight int
	title       string
	font        *Font
}

// NewBuilder returns a builder with default settings: an 800x600 window
// aligned to character cells, the title "mterm" and the built-in font.
func NewBuilder() *Builder {
	return &Builder{
		innerWidth:  800,
		innerHeight: 600,
		title:       "mterm",
	}
}

// WithInnerSize sets the size of the inside of the window in pixels. On
// creation the size is snapped down to a whole number of character cells so
// there are no margins around the grid.
func (b *Builder) WithInnerSize(width, height int) *Builder {
	b.innerWidth = width
	b.innerHeight = height
	return b
}

// WithTitle sets the window title.
func (b *Builder) WithTitle(title string) *Builder {
	b.title = title
	return b
}

// WithFont selects a custom font, usually loaded with LoadFontImage.
// Passing nil restores the built-in font.
func (b *Builder) WithFont(font *Font) *Builder {
	b.font = font
	return b
}
