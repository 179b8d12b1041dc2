package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete population state needed to resume a run.
type Snapshot struct {
	Version int    `json:"version"`
	Seed    uint64 `json:"seed"`

	// Generator state, empty when the generator was injected from outside.
	RNGState []byte `json:"rng_state,omitempty"`

	FieldWidth  int `json:"field_width"`
	FieldHeight int `json:"field_height"`

	Tick   uint64 `json:"tick"`
	Cursor int    `json:"cursor"` // index into Cells of the next cell to run, -1 for none

	// Cells in scheduling order.
	Cells []CellState `json:"cells"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// CellState holds one cell's complete state.
type CellState struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	DX    int8   `json:"dx"`
	DY    int8   `json:"dy"`
	Color uint32 `json:"color"`

	Energy     float32 `json:"energy"`
	Metabolism float32 `json:"metabolism"`
	Sleeping   bool    `json:"sleeping,omitempty"`
	Generation uint32  `json:"generation"`

	Neurons   []float32      `json:"neurons"`
	Combiners []uint8        `json:"combiners"`
	Synapses  []SynapseState `json:"synapses"`
}

// SynapseState is the serialized form of one synapse.
type SynapseState struct {
	Src    uint8   `json:"src"`
	Dst    uint8   `json:"dst"`
	Weight float32 `json:"w"`
}

// SaveSnapshot writes a snapshot to dir.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
