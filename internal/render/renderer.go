package render

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// renderInfoSize is the byte size of the RenderInfo uniform block:
// font_width, font_height and two padding words.
const renderInfoSize = 16

// fenceTimeout bounds how long a frame submission may take.
const fenceTimeout = 5 * time.Second

// Config describes the renderer inputs.
type Config struct {
	// FontWidth and FontHeight are the glyph cell size in pixels.
	FontWidth  uint32
	FontHeight uint32
	// FontPixels is the 16x16 glyph atlas, 16*FontWidth x 16*FontHeight
	// packed RGBA texels.
	FontPixels []uint32
	// PixelWidth and PixelHeight are the initial target size in pixels.
	PixelWidth  uint32
	PixelHeight uint32
	// TargetFormat is the colour format of the render target. The zero
	// value selects BGRA8Unorm, the usual surface format.
	TargetFormat gputypes.TextureFormat
}

// Renderer owns the GPU resources for drawing the ASCII grid: the four
// textures, the uniform block, the bind groups and the render pipeline.
// One Render call draws the whole grid with a single 4-vertex strip.
//
// Renderer is safe for concurrent use.
type Renderer struct {
	mu sync.Mutex

	instance       hal.Instance
	device         hal.Device
	queue          hal.Queue
	externalDevice bool

	shader        hal.ShaderModule
	textureLayout hal.BindGroupLayout
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	fore *gridTexture
	back *gridTexture
	text *gridTexture
	font *gridTexture

	textureGroup hal.BindGroup
	uniformBuf   hal.Buffer
	uniformGroup hal.BindGroup

	fontW  uint32
	fontH  uint32
	cols   uint32
	rows   uint32
	format gputypes.TextureFormat
}

// New creates a renderer that owns its GPU device.
func New(cfg Config) (*Renderer, error) {
	instance, device, queue, err := initDevice()
	if err != nil {
		return nil, err
	}
	r, err := newRenderer(instance, device, queue, false, cfg)
	if err != nil {
		device.Destroy()
		instance.Destroy()
		return nil, err
	}
	return r, nil
}

// NewWithProvider creates a renderer on a shared GPU device. The renderer
// does not own the device and will not destroy it.
func NewWithProvider(provider any, cfg Config) (*Renderer, error) {
	device, queue, err := deviceFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return newRenderer(nil, device, queue, true, cfg)
}

func newRenderer(instance hal.Instance, device hal.Device, queue hal.Queue, external bool, cfg Config) (*Renderer, error) {
	if cfg.FontWidth == 0 || cfg.FontHeight == 0 {
		return nil, fmt.Errorf("render: zero font cell size")
	}
	format := cfg.TargetFormat
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}

	r := &Renderer{
		instance:       instance,
		device:         device,
		queue:          queue,
		externalDevice: external,
		fontW:          cfg.FontWidth,
		fontH:          cfg.FontHeight,
		cols:           maxU32(1, cfg.PixelWidth/cfg.FontWidth),
		rows:           maxU32(1, cfg.PixelHeight/cfg.FontHeight),
		format:         format,
	}

	if err := r.createPipeline(); err != nil {
		r.destroyPipeline()
		return nil, err
	}
	if err := r.createTextures(cfg.FontPixels); err != nil {
		r.destroyTextures()
		r.destroyPipeline()
		return nil, err
	}
	slogger().Debug("render: renderer ready",
		"cols", r.cols, "rows", r.rows,
		"font_width", r.fontW, "font_height", r.fontH)
	return r, nil
}

// createPipeline builds the shader module, bind group layouts, uniform
// buffer and render pipeline.
func (r *Renderer) createPipeline() error {
	spirv, err := compileShaderToSPIRV(gridShaderWGSL)
	if err != nil {
		return err
	}
	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "grid_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	r.shader = shader

	textureLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "grid_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageFragment, Texture: &gputypes.TextureBindingLayout{
				SampleType: gputypes.TextureSampleTypeFloat, ViewDimension: gputypes.TextureViewDimension2D}},
			{Binding: 1, Visibility: gputypes.ShaderStageFragment, Texture: &gputypes.TextureBindingLayout{
				SampleType: gputypes.TextureSampleTypeFloat, ViewDimension: gputypes.TextureViewDimension2D}},
			{Binding: 2, Visibility: gputypes.ShaderStageFragment, Texture: &gputypes.TextureBindingLayout{
				SampleType: gputypes.TextureSampleTypeFloat, ViewDimension: gputypes.TextureViewDimension2D}},
			{Binding: 3, Visibility: gputypes.ShaderStageFragment, Texture: &gputypes.TextureBindingLayout{
				SampleType: gputypes.TextureSampleTypeFloat, ViewDimension: gputypes.TextureViewDimension2D}},
		},
	})
	if err != nil {
		return fmt.Errorf("create texture bind group layout: %w", err)
	}
	r.textureLayout = textureLayout

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "grid_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform bind group layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "grid_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.textureLayout, r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "grid_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleStrip,
			FrontFace: gputypes.FrontFaceCW,
			CullMode:  gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	r.pipeline = pipeline

	uniformBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "grid_uniform",
		Size:  renderInfoSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	r.uniformBuf = uniformBuf
	r.queue.WriteBuffer(r.uniformBuf, 0, r.renderInfoBytes())

	uniformGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "grid_uniform_group",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.uniformBuf.NativeHandle(), Offset: 0, Size: renderInfoSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform bind group: %w", err)
	}
	r.uniformGroup = uniformGroup
	return nil
}

// createTextures builds the grid textures, the font texture and the
// texture bind group. fontPixels may be shorter than the atlas; missing
// texels stay transparent.
func (r *Renderer) createTextures(fontPixels []uint32) error {
	var err error
	if r.fore, err = newGridTexture(r.device, "grid_fore", r.cols, r.rows); err != nil {
		return err
	}
	if r.back, err = newGridTexture(r.device, "grid_back", r.cols, r.rows); err != nil {
		return err
	}
	if r.text, err = newGridTexture(r.device, "grid_text", r.cols, r.rows); err != nil {
		return err
	}
	if r.font, err = newGridTexture(r.device, "grid_font", 16*r.fontW, 16*r.fontH); err != nil {
		return err
	}
	copy(r.font.storage, fontPixels)
	r.font.upload(r.queue)

	return r.createTextureGroup()
}

// createTextureGroup (re)builds the bind group over the four texture views.
func (r *Renderer) createTextureGroup() error {
	group, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "grid_texture_group",
		Layout: r.textureLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: r.fore.view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: r.back.view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.TextureViewBinding{TextureView: r.text.view.NativeHandle()}},
			{Binding: 3, Resource: gputypes.TextureViewBinding{TextureView: r.font.view.NativeHandle()}},
		},
	})
	if err != nil {
		return fmt.Errorf("create texture bind group: %w", err)
	}
	r.textureGroup = group
	return nil
}

// renderInfoBytes serializes the uniform block little-endian.
func (r *Renderer) renderInfoBytes() []byte {
	buf := make([]byte, renderInfoSize)
	binary.LittleEndian.PutUint32(buf[0:4], r.fontW)
	binary.LittleEndian.PutUint32(buf[4:8], r.fontH)
	// padding words stay zero
	return buf
}

// Images returns the three presentation planes. Callers mutate them and
// then Render uploads the contents. All planes are nil while the grid is
// lost to a failed resize.
func (r *Renderer) Images() (fore, back, text []uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fore == nil {
		return nil, nil, nil
	}
	return r.fore.storage, r.back.storage, r.text.storage
}

// Size returns the grid size in character cells.
func (r *Renderer) Size() (cols, rows int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.cols), int(r.rows)
}

// FontSize returns the glyph cell size in pixels.
func (r *Renderer) FontSize() (w, h uint32) {
	return r.fontW, r.fontH
}

// Resize adapts the grid to a new target size in pixels. When the cell
// count changes, the three grid textures and their bind group are
// recreated; the font texture is untouched. Plane contents are reset.
func (r *Renderer) Resize(pixelWidth, pixelHeight uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cols := maxU32(1, pixelWidth/r.fontW)
	rows := maxU32(1, pixelHeight/r.fontH)
	if cols == r.cols && rows == r.rows && r.fore != nil {
		return nil
	}
	r.cols = cols
	r.rows = rows

	if r.textureGroup != nil {
		r.device.DestroyBindGroup(r.textureGroup)
		r.textureGroup = nil
	}
	r.fore.destroy(r.device)
	r.back.destroy(r.device)
	r.text.destroy(r.device)

	var err error
	if r.fore, err = newGridTexture(r.device, "grid_fore", r.cols, r.rows); err != nil {
		r.dropGrid()
		return err
	}
	if r.back, err = newGridTexture(r.device, "grid_back", r.cols, r.rows); err != nil {
		r.dropGrid()
		return err
	}
	if r.text, err = newGridTexture(r.device, "grid_text", r.cols, r.rows); err != nil {
		r.dropGrid()
		return err
	}
	if err := r.createTextureGroup(); err != nil {
		r.dropGrid()
		return err
	}
	slogger().Debug("render: grid resized", "cols", r.cols, "rows", r.rows)
	return nil
}

// dropGrid releases whatever grid planes survive a failed resize. The
// renderer stays alive but refuses to draw until a later Resize succeeds.
func (r *Renderer) dropGrid() {
	r.fore.destroy(r.device)
	r.back.destroy(r.device)
	r.text.destroy(r.device)
	r.fore, r.back, r.text = nil, nil, nil
}

// Render uploads the grid planes and draws the frame into target, which
// must be a hal.TextureView (e.g. the window's surface view).
func (r *Renderer) Render(target any) error {
	view, ok := target.(hal.TextureView)
	if !ok || view == nil {
		return fmt.Errorf("render: target is not a hal.TextureView")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fore == nil {
		return fmt.Errorf("render: grid textures lost by a failed resize")
	}
	r.fore.upload(r.queue)
	r.back.upload(r.queue)
	r.text.upload(r.queue)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "grid_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("grid_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	r.recordPass(encoder, view)

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	return r.submit(cmdBuf)
}

// recordPass encodes the single fullscreen draw into the target view.
func (r *Renderer) recordPass(encoder hal.CommandEncoder, view hal.TextureView) {
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "grid_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	rp.SetPipeline(r.pipeline)
	rp.SetBindGroup(0, r.textureGroup, nil)
	rp.SetBindGroup(1, r.uniformGroup, nil)
	rp.Draw(4, 1, 0, 0)
	rp.End()
}

// submit sends the command buffer and waits for completion.
func (r *Renderer) submit(cmdBuf hal.CommandBuffer) error {
	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	done, err := r.device.Wait(fence, 1, fenceTimeout)
	if err != nil {
		return fmt.Errorf("wait: %w", err)
	}
	if !done {
		return fmt.Errorf("render: frame fence timeout")
	}
	return nil
}

// RenderOffscreen draws the grid into a private texture and reads the
// pixels back, one packed texel per pixel in the renderer's target format.
// The output is Cols*FontWidth x Rows*FontHeight.
func (r *Renderer) RenderOffscreen() ([]uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fore == nil {
		return nil, fmt.Errorf("render: grid textures lost by a failed resize")
	}
	w := r.cols * r.fontW
	h := r.rows * r.fontH

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "grid_offscreen",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        r.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("create offscreen texture: %w", err)
	}
	defer r.device.DestroyTexture(tex)

	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "grid_offscreen_view",
		Format:        r.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create offscreen view: %w", err)
	}
	defer r.device.DestroyTextureView(view)

	r.fore.upload(r.queue)
	r.back.upload(r.queue)
	r.text.upload(r.queue)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "grid_offscreen_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("grid_offscreen_frame"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	r.recordPass(encoder, view)

	// Copy pitch must be 256-byte aligned for readback.
	bytesPerRow := w * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "grid_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(staging)

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if err := r.submit(cmdBuf); err != nil {
		return nil, err
	}

	readback := make([]byte, stagingSize)
	if err := r.queue.ReadBuffer(staging, 0, readback); err != nil {
		return nil, fmt.Errorf("read staging buffer: %w", err)
	}

	pixels := make([]uint32, w*h)
	for y := uint32(0); y < h; y++ {
		row := readback[y*alignedBytesPerRow:]
		for x := uint32(0); x < w; x++ {
			pixels[y*w+x] = binary.LittleEndian.Uint32(row[x*4:])
		}
	}
	return pixels, nil
}

// Destroy releases all GPU resources. When the device is owned by the
// renderer it is destroyed too.
func (r *Renderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.destroyTextures()
	r.destroyPipeline()

	if !r.externalDevice && r.device != nil {
		r.device.Destroy()
	}
	r.device = nil
	r.queue = nil
	if r.instance != nil {
		r.instance.Destroy()
		r.instance = nil
	}
}

func (r *Renderer) destroyTextures() {
	if r.textureGroup != nil {
		r.device.DestroyBindGroup(r.textureGroup)
		r.textureGroup = nil
	}
	r.fore.destroy(r.device)
	r.back.destroy(r.device)
	r.text.destroy(r.device)
	r.font.destroy(r.device)
	r.fore, r.back, r.text, r.font = nil, nil, nil, nil
}

func (r *Renderer) destroyPipeline() {
	if r.uniformGroup != nil {
		r.device.DestroyBindGroup(r.uniformGroup)
		r.uniformGroup = nil
	}
	if r.uniformBuf != nil {
		r.device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.textureLayout != nil {
		r.device.DestroyBindGroupLayout(r.textureLayout)
		r.textureLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
