package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-move/common"
	"github.com/Carmen-Shannon/oxy-move/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// Window provides platform windowing and publishes raw input as input.Events.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// Input returns the event source fed by this window's keyboard and pointer callbacks.
	// Events are dispatched on the thread running ProcessMessages.
	//
	// Returns:
	//   - input.Source: the window's input source
	Input() input.Source

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are framebuffer pixels once the platform window exists.
	width  int
	height int

	logger *zap.Logger

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	events *input.Dispatcher

	onUpdate func()
	onResize func(width, height int)

	// last known cursor position in screen coordinates
	cursorX, cursorY float64
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
// Panics if the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	w.logger.Info("window created",
		zap.String("title", w.title),
		zap.Int("width", w.width),
		zap.Int("height", w.height),
	)
	return w
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "oxy-move",
		maxWidth:  1600,
		maxHeight: 1200,
		minWidth:  600,
		minHeight: 200,
		width:     1280,
		height:    720,
		logger:    zap.NewNop(),
		events:    input.NewDispatcher(),
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) Input() input.Source {
	return w.events
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	if err := platformCloseWindow(w); err != nil {
		return err
	}
	w.logger.Info("window closed")
	return nil
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// --- platform-neutral event translation, called from the platform callbacks ---

// keyChanged publishes KeyDown for presses and repeats and KeyUp for releases.
func (w *engineWindow) keyChanged(key uint32, pressed bool) {
	t := input.EventKeyUp
	if pressed {
		t = input.EventKeyDown
	}
	w.events.Dispatch(input.Event{Type: t, Key: key})
}

// buttonChanged publishes PointerDown for any press over the surface and PointerUp for any
// release. A right-button press is followed by a ContextMenu event.
func (w *engineWindow) buttonChanged(button uint32, pressed bool) {
	e := input.Event{X: w.cursorX, Y: w.cursorY, Target: input.TargetSurface}
	if !pressed {
		e.Type = input.EventPointerUp
		w.events.Dispatch(e)
		return
	}

	e.Type = input.EventPointerDown
	w.events.Dispatch(e)
	if button == common.MouseButtonRight {
		e.Type = input.EventContextMenu
		w.events.Dispatch(e)
	}
}

func (w *engineWindow) cursorMoved(x, y float64) {
	w.cursorX, w.cursorY = x, y
	w.events.Dispatch(input.Event{Type: input.EventPointerMove, X: x, Y: y, Target: input.TargetSurface})
}

// pointerLost publishes PointerCancel when the cursor leaves the window or focus is lost.
func (w *engineWindow) pointerLost() {
	w.events.Dispatch(input.Event{Type: input.EventPointerCancel, X: w.cursorX, Y: w.cursorY})
}

func (w *engineWindow) resized(width, height int) {
	w.width = width
	w.height = height
	w.logger.Debug("window resized", zap.Int("width", width), zap.Int("height", height))
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
