package mterm

// RGB packs colour components into the u32 format used by the presentation
// planes. The layout is 0xAABBGGRR with alpha forced to opaque, matching the
// byte order of an RGBA8 texel on a little-endian host.
func RGB(r, g, b uint8) uint32 {
	return 0xff000000 + uint32(b)<<16 + uint32(g)<<8 + uint32(r)
}

// Basic colours for convenience.
var (
	Black   = RGB(0, 0, 0)
	Red     = RGB(255, 0, 0)
	Green   = RGB(0, 255, 0)
	Yellow  = RGB(255, 255, 0)
	Blue    = RGB(0, 0, 255)
	Magenta = RGB(255, 0, 255)
	Cyan    = RGB(0, 255, 255)
	White   = RGB(255, 255, 255)
)
