package engine

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-move/engine/profiler"
	"github.com/Carmen-Shannon/oxy-move/engine/renderer"
	"github.com/Carmen-Shannon/oxy-move/engine/window"
	"go.uber.org/zap"
)

// Ticker is anything advanced by the engine's fixed-rate loop, such as a MoveController.
type Ticker interface {
	// Tick advances by deltaSeconds of real time.
	//
	// Parameters:
	//   - deltaSeconds: elapsed time since the previous tick
	Tick(deltaSeconds float64)
}

// engine implements the Engine interface.
// Coordinates the tick and render goroutines with the window thread.
type engine struct {
	mu     *sync.Mutex
	logger *zap.Logger

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	started bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	shutdownOnce sync.Once

	window   window.Window
	renderer renderer.Renderer

	renderProfiler   *profiler.Profiler
	tickProfiler     *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float64)
	renderCallback func(deltaTime float64)
	tickers        []Ticker

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, render loop, and window management.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// Takes effect immediately if the engine is running.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers a function called each engine tick after all Tickers.
	// Must be called before Start.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float64))

	// SetRenderCallback registers the function called each render frame, before the
	// renderer presents. Must be called before Start.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float64))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default). Must be called before Start.
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddTicker registers t with the tick loop. Tickers run in registration order.
	// Adding the same Ticker twice is a no-op.
	//
	// Parameters:
	//   - t: the Ticker to add
	AddTicker(t Ticker)

	// RemoveTicker unregisters t. Unknown Tickers are ignored.
	//
	// Parameters:
	//   - t: the Ticker to remove
	RemoveTicker(t Ticker)

	// Start launches the tick and render goroutines and returns immediately.
	// Calling Start more than once is a no-op.
	Start()

	// Run starts the engine and runs the window message loop on the calling goroutine,
	// which must be the main thread. It installs its own window update callback. Once the
	// window closes or Quit is called, Run waits for the engine goroutines, releases the
	// renderer and closes the window. Without a window, Run blocks until Quit.
	Run()

	// Quit signals all engine goroutines to stop. It does not wait; use Wait for that.
	// Safe to call multiple times and from inside a Ticker.
	Quit()

	// Wait blocks until the engine goroutines have exited after Quit.
	Wait()

	// Done returns a channel closed when Quit has been signalled.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		logger:          zap.NewNop(),
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	e.renderProfiler = profiler.NewProfiler(profiler.WithName("render"), profiler.WithLogger(e.logger))
	e.tickProfiler = profiler.NewProfiler(profiler.WithName("tick"), profiler.WithLogger(e.logger))

	if e.window != nil && e.renderer != nil {
		e.window.SetResizeCallback(e.renderer.Resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	e.running.Store(true)

	e.wg.Add(1)
	go e.handleEngine()
	if e.renderer != nil || e.renderCallback != nil {
		e.wg.Add(1)
		go e.handleRender()
	}

	e.logger.Info("engine started",
		zap.Duration("tick_rate", e.engineTickRate),
		zap.Int("tickers", len(e.tickers)),
	)
}

func (e *engine) Run() {
	e.Start()
	if e.window == nil {
		<-e.quitChannel
		e.shutdown()
		return
	}

	// the update callback runs on the main thread, where the window may be closed
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			e.shutdown()
		default:
		}
	})
	e.window.ProcessMessages()
	e.shutdown()
}

// shutdown stops the goroutines, releases the renderer, then closes the window.
// Must run on the main thread when a window is attached.
func (e *engine) shutdown() {
	e.shutdownOnce.Do(func() {
		e.signalQuit()
		e.Wait()
		if e.renderer != nil {
			e.renderer.Release()
		}
		if e.window != nil {
			if err := e.window.Close(); err != nil {
				e.logger.Warn("failed to close window", zap.Error(err))
			}
		}
		e.logger.Info("engine stopped")
	})
}

// Quit signals all engine goroutines to stop without waiting for them.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Wait() {
	e.wg.Wait()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
		e.logger.Info("engine stopping")
	})
}

// recoverLoop logs a panic from an engine goroutine and shuts the engine down instead of
// crashing the process.
func (e *engine) recoverLoop(loop string) {
	if r := recover(); r != nil {
		e.logger.Error("engine goroutine recovered from panic",
			zap.String("loop", loop),
			zap.Any("panic", r),
			zap.ByteString("stack", debug.Stack()),
		)
		e.signalQuit()
	}
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Ticks every registered Ticker, then the tick callback, and listens for rate changes via
// tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer e.recoverLoop("tick")

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(lastTick).Seconds()
			lastTick = now

			for _, t := range e.snapshotTickers() {
				t.Tick(dt)
			}
			if e.tickCallback != nil {
				e.tickCallback(dt)
			}

			if e.profilingEnabled.Load() {
				e.tickProfiler.Tick()
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
			e.logger.Debug("tick rate changed", zap.Duration("tick_rate", newRate))
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Calls the render callback, then presents through the renderer if one is attached.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer e.recoverLoop("render")

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := now.Sub(lastRender).Seconds()
			lastRender = now

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			if e.renderer != nil {
				if err := e.renderer.Present(); err != nil {
					e.logger.Warn("frame dropped", zap.Error(err))
				}
			}

			if e.profilingEnabled.Load() {
				e.renderProfiler.Tick()
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

func (e *engine) snapshotTickers() []Ticker {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Ticker(nil), e.tickers...)
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickDuration(fps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.engineTickRate = newRate
}

func (e *engine) SetTickCallback(callback func(deltaTime float64)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float64)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddTicker(t Ticker) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.tickers {
		if existing == t {
			return
		}
	}
	e.tickers = append(e.tickers, t)
}

func (e *engine) RemoveTicker(t Ticker) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, existing := range e.tickers {
		if existing == t {
			e.tickers = append(e.tickers[:i:i], e.tickers[i+1:]...)
			return
		}
	}
}

func tickDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
