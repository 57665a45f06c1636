package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-move/engine/input"
	"github.com/Carmen-Shannon/oxy-move/engine/renderer"
	"github.com/Carmen-Shannon/oxy-move/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type countingTicker struct {
	count atomic.Int64
}

func (c *countingTicker) Tick(float64) { c.count.Add(1) }

type panickingTicker struct{}

func (panickingTicker) Tick(float64) { panic("boom") }

type fakeRenderer struct {
	mu       sync.Mutex
	presents int
	released int
	err      error
}

var _ renderer.Renderer = &fakeRenderer{}

func (f *fakeRenderer) SetClearColor(r, g, b, a float64)         {}
func (f *fakeRenderer) ClearColor() wgpu.Color                   { return wgpu.Color{} }
func (f *fakeRenderer) SetPresentMode(mode renderer.PresentMode) {}
func (f *fakeRenderer) Resize(width, height int)                 {}

func (f *fakeRenderer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presents++
	return f.err
}

func (f *fakeRenderer) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released++
}

func (f *fakeRenderer) stats() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents, f.released
}

// quittingTicker asks the engine to stop from inside the tick loop after n ticks.
type quittingTicker struct {
	eng   Engine
	n     int64
	count atomic.Int64
}

func (q *quittingTicker) Tick(float64) {
	if q.count.Add(1) == q.n {
		q.eng.Quit()
	}
}

// stubWindow runs a message loop without a platform window.
type stubWindow struct {
	onUpdate func()
	running  bool
	closed   int
}

var _ window.Window = &stubWindow{}

func (w *stubWindow) SetUpdateCallback(callback func())                  { w.onUpdate = callback }
func (w *stubWindow) SetResizeCallback(callback func(width, height int)) {}
func (w *stubWindow) Input() input.Source                                { return input.NewDispatcher() }
func (w *stubWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor         { return nil }
func (w *stubWindow) IsRunning() bool                                    { return w.running }
func (w *stubWindow) Width() int                                         { return 800 }
func (w *stubWindow) Height() int                                        { return 600 }

func (w *stubWindow) Close() error {
	w.closed++
	w.running = false
	return nil
}

func (w *stubWindow) ProcessMessages() {
	for w.IsRunning() {
		if w.onUpdate != nil {
			w.onUpdate()
		}
		time.Sleep(time.Millisecond)
	}
}

func runWithTimeout(t *testing.T, e Engine) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
}

func TestQuitFromTickerEndsRunHeadless(t *testing.T) {
	q := &quittingTicker{n: 3}
	e := NewEngine(WithTickRate(500), WithTicker(q))
	q.eng = e

	runWithTimeout(t, e)
	assert.GreaterOrEqual(t, q.count.Load(), int64(3))
}

func TestQuitFromTickerClosesWindow(t *testing.T) {
	w := &stubWindow{running: true}
	fr := &fakeRenderer{}
	q := &quittingTicker{n: 3}
	e := NewEngine(WithWindow(w), WithRenderer(fr), WithRenderFrameLimit(500), WithTickRate(500), WithTicker(q))
	q.eng = e

	runWithTimeout(t, e)
	assert.Equal(t, 1, w.closed)
	_, released := fr.stats()
	assert.Equal(t, 1, released)
}

func TestTickersRunUntilQuit(t *testing.T) {
	a, b := &countingTicker{}, &countingTicker{}
	e := NewEngine(WithTickRate(500), WithTicker(a))
	e.AddTicker(b)
	e.AddTicker(b)

	e.Start()
	e.Start()
	assert.Eventually(t, func() bool {
		return a.count.Load() >= 3 && b.count.Load() >= 3
	}, time.Second, time.Millisecond)

	e.Quit()
	e.Quit()
	e.Wait()

	stopped := a.count.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, a.count.Load())

	// b was added once despite the duplicate call
	assert.InDelta(t, a.count.Load(), b.count.Load(), 1)
}

func TestRemoveTicker(t *testing.T) {
	a, b := &countingTicker{}, &countingTicker{}
	e := NewEngine(WithTickRate(500), WithTicker(a), WithTicker(b))
	e.RemoveTicker(b)
	e.RemoveTicker(&countingTicker{})

	e.Start()
	assert.Eventually(t, func() bool { return a.count.Load() >= 3 }, time.Second, time.Millisecond)
	e.Quit()
	e.Wait()
	assert.Zero(t, b.count.Load())
}

func TestTickCallbackReceivesDelta(t *testing.T) {
	var total atomic.Int64
	e := NewEngine(WithTickRate(200))
	e.SetTickCallback(func(dt float64) {
		assert.Positive(t, dt)
		total.Add(1)
	})
	e.Start()
	assert.Eventually(t, func() bool { return total.Load() >= 2 }, time.Second, time.Millisecond)
	e.Quit()
	e.Wait()
}

func TestPanicInTickerStopsEngine(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := NewEngine(WithTickRate(500), WithTicker(panickingTicker{}), WithLogger(zap.New(core)))

	e.Start()
	select {
	case <-e.Done():
	case <-time.After(time.Second):
		t.Fatal("engine did not stop after panic")
	}
	e.Wait()

	entries := logs.FilterMessage("engine goroutine recovered from panic").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "tick", entries[0].ContextMap()["loop"])
	assert.Equal(t, 1, logs.FilterMessage("engine started").Len())
}

func TestRunHeadlessPresentsAndReleasesRenderer(t *testing.T) {
	fr := &fakeRenderer{}
	frames := atomic.Int64{}
	e := NewEngine(WithRenderer(fr), WithRenderFrameLimit(500))
	e.SetRenderCallback(func(float64) { frames.Add(1) })

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	assert.Eventually(t, func() bool {
		presents, _ := fr.stats()
		return presents >= 3
	}, time.Second, time.Millisecond)
	e.Quit()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Quit")
	}
	_, released := fr.stats()
	assert.Equal(t, 1, released)
	assert.Positive(t, frames.Load())
}

func TestPresentErrorsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	fr := &fakeRenderer{err: errors.New("surface lost")}
	e := NewEngine(WithRenderer(fr), WithRenderFrameLimit(500), WithLogger(zap.New(core)))

	e.Start()
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("frame dropped").Len() > 0
	}, time.Second, time.Millisecond)
	e.Quit()
	e.Wait()
}

func TestSetTickRateBeforeStart(t *testing.T) {
	e := NewEngine().(*engine)
	assert.Equal(t, time.Second/60, e.engineTickRate)

	e.SetTickRate(120)
	assert.Equal(t, time.Second/120, e.engineTickRate)

	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.engineTickRate)
}

func TestSetTickRateWhileRunningIsQueued(t *testing.T) {
	c := &countingTicker{}
	e := NewEngine(WithTickRate(10), WithTicker(c))
	e.Start()

	// at 10 Hz this would take 2s; the new rate applies without a restart
	e.SetTickRate(1000)
	e.SetTickRate(500)
	assert.Eventually(t, func() bool { return c.count.Load() >= 20 }, 500*time.Millisecond, time.Millisecond)
	e.Quit()
	e.Wait()
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 4*time.Millisecond, tickDuration(250))
	assert.Equal(t, time.Second/60, tickDuration(-1))
	assert.Equal(t, time.Duration(0), frameDuration(0))
	assert.Equal(t, 2*time.Millisecond, frameDuration(500))
}

func TestProfilerToggle(t *testing.T) {
	e := NewEngine(WithProfiling(true)).(*engine)
	assert.True(t, e.profilingEnabled.Load())
	e.DisableProfiler()
	assert.False(t, e.profilingEnabled.Load())
	e.EnableProfiler()
	assert.True(t, e.profilingEnabled.Load())
	assert.Nil(t, e.Window())
}
