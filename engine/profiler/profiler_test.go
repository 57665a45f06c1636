package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestProfiler(clock *fakeClock, options ...ProfilerOption) *Profiler {
	p := NewProfiler(options...)
	p.now = clock.now
	p.lastTime = clock.t
	return p
}

func TestTickSamplesAtInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newTestProfiler(clock, WithName("tick"), WithLogger(zap.New(core)), WithInterval(500*time.Millisecond))

	for range 29 {
		clock.t = clock.t.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Zero(t, logs.Len())

	clock.t = clock.t.Add(210 * time.Millisecond)
	require.True(t, p.Tick())

	// 30 ticks over 0.5s
	assert.InDelta(t, 60, p.Last().Rate, 1e-9)
	assert.Positive(t, p.Last().SysMB)

	entries := logs.FilterMessage("profiler sample").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "tick", entries[0].ContextMap()["loop"])

	// counters reset after a sample
	clock.t = clock.t.Add(100 * time.Millisecond)
	assert.False(t, p.Tick())
}

func TestDefaults(t *testing.T) {
	p := NewProfiler(WithInterval(0), WithLogger(nil))
	assert.Equal(t, time.Second, p.updateInterval)
	assert.Equal(t, "render", p.name)
	assert.NotNil(t, p.logger)
	assert.Equal(t, Stats{}, p.Last())
}
