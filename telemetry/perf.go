package telemetry

import (
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// PerfSample holds timing data for one Advance call.
type PerfSample struct {
	Duration time.Duration
	Ticks    int
}

// PerfCollector tracks throughput over a rolling window of Advance calls.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int
	start       time.Time

	proc *process.Process // nil when the process cannot be inspected

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a performance collector averaging over windowSize samples.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	pc := &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		pc.proc = p
	} else {
		slog.Debug("process stats unavailable", "error", err)
	}
	return pc
}

// Start begins timing an Advance call.
func (p *PerfCollector) Start() {
	p.start = time.Now()
}

// End records the Advance call started by Start.
func (p *PerfCollector) End(ticks int) {
	p.Record(PerfSample{Duration: time.Since(p.start), Ticks: ticks})
}

// Record adds a sample to the rolling window.
func (p *PerfCollector) Record(s PerfSample) {
	p.samples[p.writeIndex] = s
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgAdvance time.Duration
	MaxAdvance time.Duration

	// Throughput
	TicksPerAdvance float64
	TicksPerSecond  float64 // ticks executed per second of wall time spent in Advance
	NsPerTick       float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64

	// Resident set size of the process in bytes, 0 if unknown
	RSS uint64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.frameDuration > 0 {
		s.FrameDuration = p.frameDuration
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.proc != nil {
		if mem, err := p.proc.MemoryInfo(); err == nil {
			s.RSS = mem.RSS
		}
	}

	if p.sampleCount == 0 {
		return s
	}

	var total time.Duration
	var ticks int
	for i := 0; i < p.sampleCount; i++ {
		sample := p.samples[i]
		total += sample.Duration
		ticks += sample.Ticks
		if sample.Duration > s.MaxAdvance {
			s.MaxAdvance = sample.Duration
		}
	}

	s.AvgAdvance = total / time.Duration(p.sampleCount)
	s.TicksPerAdvance = float64(ticks) / float64(p.sampleCount)
	if total > 0 {
		s.TicksPerSecond = float64(ticks) / total.Seconds()
	}
	if ticks > 0 {
		s.NsPerTick = float64(total.Nanoseconds()) / float64(ticks)
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_advance_us", s.AvgAdvance.Microseconds(),
		"max_advance_us", s.MaxAdvance.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
		"ns_per_tick", int(s.NsPerTick),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	if s.RSS > 0 {
		attrs = append(attrs, "rss_mb", s.RSS>>20)
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd       uint64  `csv:"window_end"`
	AvgAdvanceUS    int64   `csv:"avg_advance_us"`
	MaxAdvanceUS    int64   `csv:"max_advance_us"`
	TicksPerAdvance float64 `csv:"ticks_per_advance"`
	TicksPerSec     float64 `csv:"ticks_per_sec"`
	NsPerTick       float64 `csv:"ns_per_tick"`
	FPS             float64 `csv:"fps"`
	RSSBytes        uint64  `csv:"rss_bytes"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:       windowEnd,
		AvgAdvanceUS:    s.AvgAdvance.Microseconds(),
		MaxAdvanceUS:    s.MaxAdvance.Microseconds(),
		TicksPerAdvance: s.TicksPerAdvance,
		TicksPerSec:     s.TicksPerSecond,
		NsPerTick:       s.NsPerTick,
		FPS:             s.FPS,
		RSSBytes:        s.RSS,
	}
}
