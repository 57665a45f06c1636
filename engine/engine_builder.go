package engine

import (
	"github.com/Carmen-Shannon/oxy-move/engine/renderer"
	"github.com/Carmen-Shannon/oxy-move/engine/window"
	"go.uber.org/zap"
)

// EngineBuilderOption is a functional option for configuring the engine during construction.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables the loop profilers.
//
// Parameters:
//   - enabled: true to log profiler samples
//
// Returns:
//   - EngineBuilderOption: functional option to toggle profiling
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithTickRate sets the tick loop rate in ticks per second. Values <= 0 select 60.
//
// Parameters:
//   - fps: ticks per second
//
// Returns:
//   - EngineBuilderOption: functional option to set the tick rate
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickDuration(fps)
	}
}

// WithWindow attaches the window whose message loop Run drives.
//
// Parameters:
//   - w: the window
//
// Returns:
//   - EngineBuilderOption: functional option to set the window
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer attaches a renderer that presents once per render frame and follows window
// resizes. The engine releases it on shutdown.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: functional option to set the renderer
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithTicker registers a Ticker at construction.
//
// Parameters:
//   - t: the Ticker
//
// Returns:
//   - EngineBuilderOption: functional option to add the ticker
func WithTicker(t Ticker) EngineBuilderOption {
	return func(e *engine) {
		e.tickers = append(e.tickers, t)
	}
}

// WithRenderFrameLimit caps the render loop in frames per second. 0 leaves it uncapped.
//
// Parameters:
//   - fps: maximum frames per second
//
// Returns:
//   - EngineBuilderOption: functional option to set the cap
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithLogger sets the engine logger, also used by its profilers. Nil keeps the no-op logger.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - EngineBuilderOption: functional option to set the logger
func WithLogger(logger *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
