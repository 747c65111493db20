package mterm

import (
	"errors"

	"github.com/Cthutu/mterm/internal/render"
)

// Common errors returned by mterm operations.
var (
	// ErrBadFont is returned when font image data cannot be decoded or the
	// decoded image does not divide into a 16x16 glyph grid.
	ErrBadFont = errors.New("mterm: unable to read font data")

	// ErrAdapterNotFound is returned when no usable graphics adapter exists.
	ErrAdapterNotFound = render.ErrAdapterNotFound

	// ErrNilApp is returned when Run is called with a nil App.
	ErrNilApp = errors.New("mterm: nil App")

	// ErrInvalidDimensions is returned when a width or height is not positive.
	ErrInvalidDimensions = errors.New("mterm: invalid dimensions")
)
