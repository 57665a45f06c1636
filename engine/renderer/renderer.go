// Package renderer presents frames to a window surface through WebGPU. Frames are cleared
// to a single color; there is no geometry.
package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-move/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// DefaultClearColor is the dark grey used when no clear color is configured.
var DefaultClearColor = wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0}

// Renderer presents clear-pass frames to the window surface.
// Present and Resize may be called from different goroutines.
type Renderer interface {
	// SetClearColor sets the color the next frame is cleared to.
	//
	// Parameters:
	//   - r, g, b, a: color components in [0, 1]
	SetClearColor(r, g, b, a float64)

	// ClearColor returns the current clear color.
	//
	// Returns:
	//   - wgpu.Color: the clear color
	ClearColor() wgpu.Color

	// SetPresentMode changes the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Resize reconfigures the surface for a new framebuffer size. A zero dimension
	// (minimized window) is ignored and frames are skipped until a real size arrives.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	Resize(width, height int)

	// Present clears and displays one frame.
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or encoded
	Present() error

	// Release frees GPU resources. Further calls to Present return an error.
	Release()
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     *sync.Mutex
	logger *zap.Logger

	backend RendererBackend

	clearColor  wgpu.Color
	presentMode PresentMode
	minimized   bool
	released    bool

	// pre-creation config collected from builder options
	forceFallbackAdapter bool
}

var _ Renderer = &renderer{}

// NewRenderer creates a WebGPU renderer bound to the window's surface.
//
// Parameters:
//   - w: the window providing the surface and initial size
//   - options: functional options for renderer configuration
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if no GPU adapter or device could be obtained
func NewRenderer(w window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	backend, err := newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	r.attachBackend(backend, w.Width(), w.Height())

	r.logger.Info("renderer created",
		zap.Int("width", w.Width()),
		zap.Int("height", w.Height()),
		zap.Bool("software", r.forceFallbackAdapter),
	)
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		logger:      zap.NewNop(),
		clearColor:  DefaultClearColor,
		presentMode: PresentModeVSync,
	}
	// options first so adapter selection sees them
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) attachBackend(backend RendererBackend, width, height int) {
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)
	r.Resize(width, height)
}

func (r *renderer) SetClearColor(red, green, blue, alpha float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = wgpu.Color{R: red, G: green, B: blue, A: alpha}
}

func (r *renderer) ClearColor() wgpu.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
	if !r.released {
		r.backend.SetPresentMode(mode)
	}
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.minimized = width <= 0 || height <= 0
	if r.minimized {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return fmt.Errorf("renderer released")
	}
	if r.minimized {
		return nil
	}
	if err := r.backend.ClearFrame(r.clearColor); err != nil {
		return fmt.Errorf("failed to render frame: %w", err)
	}
	r.backend.Present()
	return nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	r.backend.Release()
	r.logger.Info("renderer released")
}
