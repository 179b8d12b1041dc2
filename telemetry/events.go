// Package telemetry provides population statistics, CSV output, performance
// sampling, bookmarks and snapshots.
package telemetry

// EventType identifies a counted simulation event.
type EventType uint8

const (
	EventSpawn       EventType = iota // random cell created
	EventBirth                        // mitosis child placed
	EventStillbirth                   // mitosis child eaten on arrival
	EventStarvation                   // energy reached zero
	EventPredation                    // a cell was eaten by a mover
	EventRepelled                     // a mover died against a stronger occupant
	EventSpawnFailed                  // no empty grid cell found
	EventPoolFull                     // allocation skipped
	EventSleep                        // cell chose to sleep
	EventWake                         // sleeping cell regained full energy

	NumEventTypes int = iota
)

var eventNames = [NumEventTypes]string{
	EventSpawn:       "spawn",
	EventBirth:       "birth",
	EventStillbirth:  "stillbirth",
	EventStarvation:  "starvation",
	EventPredation:   "predation",
	EventRepelled:    "repelled",
	EventSpawnFailed: "spawn_failed",
	EventPoolFull:    "pool_full",
	EventSleep:       "sleep",
	EventWake:        "wake",
}

// String returns the event name.
func (e EventType) String() string {
	if int(e) < NumEventTypes {
		return eventNames[e]
	}
	return "unknown"
}

// EventCounts holds one counter per event type.
type EventCounts [NumEventTypes]int

// Deaths returns the total number of cells that died.
func (c *EventCounts) Deaths() int {
	return c[EventStillbirth] + c[EventStarvation] + c[EventPredation] + c[EventRepelled]
}
