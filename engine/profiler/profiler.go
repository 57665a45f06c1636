package profiler

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Stats is one profiling sample covering the frames counted since the previous sample.
type Stats struct {
	Rate        float64 // frames (or ticks) per second
	HeapMB      float64
	AllocRateMB float64 // MB allocated per second since the previous sample
	SysMB       float64
	NumGC       uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// Profiler tracks loop rate and memory statistics for one engine loop and logs a sample at
// a fixed interval. A Profiler is owned by a single goroutine and is not safe for concurrent use.
type Profiler struct {
	name           string
	logger         *zap.Logger
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
	now            func() time.Time
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithName labels the samples, e.g. "render" or "tick".
//
// Parameters:
//   - name: the loop name
//
// Returns:
//   - ProfilerOption: functional option to set the name
func WithName(name string) ProfilerOption {
	return func(p *Profiler) {
		p.name = name
	}
}

// WithLogger sets the logger samples are written to. Nil keeps the no-op logger.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - ProfilerOption: functional option to set the logger
func WithLogger(logger *zap.Logger) ProfilerOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithInterval sets how often a sample is taken. Non-positive values keep the default.
//
// Parameters:
//   - interval: time between samples
//
// Returns:
//   - ProfilerOption: functional option to set the interval
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		name:           "render",
		logger:         zap.NewNop(),
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per loop iteration.
// Logs a sample when the update interval has elapsed.
//
// Returns:
//   - bool: true if a sample was taken this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	stats := Stats{
		Rate:        float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
		NumGC:       p.memStats.NumGC,
	}

	// PauseNs is a circular buffer of the last 256 pauses
	if gcCount := stats.NumGC; gcCount > 0 {
		stats.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > stats.MaxPauseUs {
				stats.MaxPauseUs = pause
			}
		}
	}

	p.logger.Info("profiler sample",
		zap.String("loop", p.name),
		zap.Float64("rate", stats.Rate),
		zap.Float64("heap_mb", stats.HeapMB),
		zap.Float64("alloc_rate_mb", stats.AllocRateMB),
		zap.Uint32("gc", stats.NumGC),
		zap.Uint64("gc_last_pause_us", stats.LastPauseUs),
		zap.Uint64("gc_max_pause_us", stats.MaxPauseUs),
		zap.Float64("sys_mb", stats.SysMB),
	)

	p.last = stats
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = stats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recent sample, or the zero Stats if none was taken yet.
func (p *Profiler) Last() Stats {
	return p.last
}
