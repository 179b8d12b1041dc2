package telemetry

// PopulationSample is the live-population state handed to Flush.
type PopulationSample struct {
	Population   int
	Sleeping     int
	Energies     []float64
	Metabolisms  []float64
	Generations  []float64
	DistinctHues int
}

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     uint64
	windowStartTick uint64

	counts EventCounts
	totals EventCounts
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: uint64(windowTicks)}
}

// Record counts one event.
func (c *Collector) Record(e EventType) {
	c.counts[e]++
	c.totals[e]++
}

// Count returns the count of e in the current window.
func (c *Collector) Count(e EventType) int { return c.counts[e] }

// Total returns the count of e since the collector was created.
func (c *Collector) Total(e EventType) int { return c.totals[e] }

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(tick uint64) bool {
	return tick-c.windowStartTick >= c.windowTicks
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() uint64 { return c.windowTicks }

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(tick uint64, dropped uint64, pop PopulationSample) WindowStats {
	energy := Summarize(pop.Energies)
	metabolism := Summarize(pop.Metabolisms)
	generation := Summarize(pop.Generations)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,

		Population:   pop.Population,
		Sleeping:     pop.Sleeping,
		DistinctHues: pop.DistinctHues,

		Spawns:       c.counts[EventSpawn],
		Births:       c.counts[EventBirth],
		Stillbirths:  c.counts[EventStillbirth],
		Starvations:  c.counts[EventStarvation],
		Predations:   c.counts[EventPredation],
		Repelled:     c.counts[EventRepelled],
		SpawnsFailed: c.counts[EventSpawnFailed],
		PoolFull:     c.counts[EventPoolFull],
		Sleeps:       c.counts[EventSleep],
		Wakes:        c.counts[EventWake],
		DroppedTicks: dropped,

		EnergyMean: energy.Mean,
		EnergyP10:  energy.P10,
		EnergyP50:  energy.P50,
		EnergyP90:  energy.P90,

		MetabolismMean: metabolism.Mean,
		MetabolismStd:  metabolism.Std,

		GenerationMean: generation.Mean,
		GenerationMax:  generation.Max,
	}

	c.windowStartTick = tick
	c.counts = EventCounts{}

	return stats
}
