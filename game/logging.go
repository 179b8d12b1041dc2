package game

import (
	"fmt"
	"io"

	"github.com/pthm-cable/mitosis/components"
	"github.com/pthm-cable/mitosis/systems"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// LogWorldState prints a human-readable summary of the population.
func (s *Simulation) LogWorldState() {
	var sleeping int
	var energy, metabolism float32
	var minEnergy, maxEnergy float32 = 1, 0
	var maxGen uint32

	s.pool.Each(func(_ systems.Handle, c *components.Cell) bool {
		if c.Sleeping {
			sleeping++
		}
		energy += c.Energy
		metabolism += c.Metabolism
		minEnergy = min(minEnergy, c.Energy)
		maxEnergy = max(maxEnergy, c.Energy)
		maxGen = max(maxGen, c.Generation)
		return true
	})

	n := s.pool.Len()
	var avgEnergy, avgMetabolism float32
	if n > 0 {
		avgEnergy = energy / float32(n)
		avgMetabolism = metabolism / float32(n)
	} else {
		minEnergy = 0
	}

	Logf("=== Tick %d (%.0f tps%s) ===", s.tick, s.clock.tps, pausedSuffix(s.clock.paused))
	Logf("Cells: %d/%d (sleeping: %d, free slots: %d)", n, s.pool.Cap(), sleeping, s.pool.Free())
	Logf("Energy: %.3f avg, %.3f-%.3f range | Metabolism: %.3f avg", avgEnergy, minEnergy, maxEnergy, avgMetabolism)
	Logf("Generation: max %d | Dropped ticks: %d", maxGen, s.clock.dropped)
	Logf("")
}

func pausedSuffix(paused bool) string {
	if paused {
		return ", paused"
	}
	return ""
}
