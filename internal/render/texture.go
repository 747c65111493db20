package render

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// gridTexture pairs a GPU texture with its CPU-side storage. The storage is
// one packed RGBA texel (0xAABBGGRR) per pixel; upload serializes it
// little-endian so the byte order matches RGBA8Unorm.
type gridTexture struct {
	width   uint32
	height  uint32
	storage []uint32
	tex     hal.Texture
	view    hal.TextureView
}

// newGridTexture creates an RGBA8 texture with zeroed storage.
func newGridTexture(device hal.Device, label string, width, height uint32) (*gridTexture, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %s: %w", label, err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %s: %w", label, err)
	}

	return &gridTexture{
		width:   width,
		height:  height,
		storage: make([]uint32, width*height),
		tex:     tex,
		view:    view,
	}, nil
}

// upload writes the CPU storage into the GPU texture.
func (t *gridTexture) upload(queue hal.Queue) {
	data := make([]byte, len(t.storage)*4)
	for i, texel := range t.storage {
		binary.LittleEndian.PutUint32(data[i*4:], texel)
	}
	queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		data,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: t.width * 4, RowsPerImage: t.height},
		&hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	)
}

// destroy releases the view and texture.
func (t *gridTexture) destroy(device hal.Device) {
	if t == nil {
		return
	}
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
}
