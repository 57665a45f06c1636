package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuRendererBackend presents clear-only frames through WebGPU.
type wgpuRendererBackend struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	presentMode   wgpu.PresentMode
	surfaceFormat *wgpu.TextureFormat
	width         int
	height        int

	// frame held between ClearFrame and Present
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackend{}

// newWGPURendererBackend creates the instance, surface, adapter, device and queue.
//
// Parameters:
//   - surfaceDescriptor: platform surface from the window
//   - forceFallbackAdapter: true to request a software adapter
//
// Returns:
//   - *wgpuRendererBackend: the backend, surface not yet configured
//   - error: an error if no adapter or device is available
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (*wgpuRendererBackend, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("window has no surface descriptor")
	}

	runtime.LockOSThread()
	b := &wgpuRendererBackend{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	return b, nil
}

func (b *wgpuRendererBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.width, b.height = width, height
	b.configureLocked()
}

// configureLocked applies the stored size and present mode. Caller must hold the lock.
func (b *wgpuRendererBackend) configureLocked() {
	if b.width <= 0 || b.height <= 0 {
		return
	}
	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(b.width),
		Height:      uint32(b.height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

func (b *wgpuRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
	if b.surfaceFormat != nil {
		b.configureLocked()
	}
}

func (b *wgpuRendererBackend) ClearFrame(color wgpu.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return errors.New("surface not configured")
	}
	// acquiring twice without presenting is a wgpu validation error
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("failed to create surface view: %w", err)
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: color,
			},
		},
	})
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrameLocked()
}

func (b *wgpuRendererBackend) releaseFrameLocked() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrameLocked()
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
	b.surfaceFormat = nil
}
