package renderer

import "github.com/cogentcore/webgpu/wgpu"

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ParsePresentMode maps a configuration name to a PresentMode.
// "fifo" and "vsync" select PresentModeVSync; "immediate" and "uncapped" select PresentModeUncapped.
//
// Parameters:
//   - name: the mode name
//
// Returns:
//   - PresentMode: the parsed mode
//   - bool: false if the name is not recognized
func ParsePresentMode(name string) (PresentMode, bool) {
	switch name {
	case "fifo", "vsync":
		return PresentModeVSync, true
	case "immediate", "uncapped":
		return PresentModeUncapped, true
	default:
		return PresentModeVSync, false
	}
}

// RendererBackend is the GPU API seam used by the Renderer.
type RendererBackend interface {
	// ConfigureSurface (re)configures the swapchain for the given framebuffer size.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// ClearFrame acquires the next surface texture, records a single pass clearing it to
	// color and submits it. The texture stays acquired until Present.
	//
	// Parameters:
	//   - color: the clear color
	//
	// Returns:
	//   - error: an error if the surface texture or command encoding fails
	ClearFrame(color wgpu.Color) error

	// Present displays the frame acquired by ClearFrame. No-op if none is held.
	Present()

	// Release frees all GPU objects. The backend is unusable afterwards.
	Release()
}
