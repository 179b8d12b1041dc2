package telemetry

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	s := Summarize(values)

	if math.Abs(s.Mean-0.55) > 1e-9 {
		t.Errorf("mean = %v, want 0.55", s.Mean)
	}
	if s.P10 != 0.1 {
		t.Errorf("p10 = %v, want 0.1", s.P10)
	}
	if s.P50 != 0.5 {
		t.Errorf("p50 = %v, want 0.5", s.P50)
	}
	if s.P90 != 0.9 {
		t.Errorf("p90 = %v, want 0.9", s.P90)
	}
	if s.Max != 1.0 {
		t.Errorf("max = %v, want 1", s.Max)
	}
	if s.Std <= 0 {
		t.Errorf("expected positive std, got %v", s.Std)
	}

	if values[0] != 0.1 || values[9] != 1.0 {
		t.Error("Summarize modified its input")
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty sample: got %+v", s)
	}

	s := Summarize([]float64{0.25})
	if s.Mean != 0.25 || s.Std != 0 || s.P50 != 0.25 {
		t.Errorf("single value: got %+v", s)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(100)

	c.Record(EventSpawn)
	c.Record(EventBirth)
	c.Record(EventBirth)
	c.Record(EventStarvation)
	c.Record(EventPredation)

	if c.ShouldFlush(99) {
		t.Error("should not flush before window end")
	}
	if !c.ShouldFlush(100) {
		t.Error("should flush at window end")
	}

	stats := c.Flush(100, 7, PopulationSample{
		Population:  3,
		Sleeping:    1,
		Energies:    []float64{0.2, 0.4, 0.6},
		Metabolisms: []float64{0.1, 0.1, 0.1},
		Generations: []float64{0, 2, 4},
	})

	if stats.Births != 2 || stats.Spawns != 1 {
		t.Errorf("unexpected counts: births %d spawns %d", stats.Births, stats.Spawns)
	}
	if stats.Deaths() != 2 {
		t.Errorf("expected 2 deaths, got %d", stats.Deaths())
	}
	if stats.DroppedTicks != 7 {
		t.Errorf("expected 7 dropped ticks, got %d", stats.DroppedTicks)
	}
	if stats.GenerationMax != 4 {
		t.Errorf("expected max generation 4, got %v", stats.GenerationMax)
	}
	if stats.MetabolismStd > 1e-12 {
		t.Errorf("expected zero metabolism spread, got %v", stats.MetabolismStd)
	}

	if c.Count(EventBirth) != 0 {
		t.Error("window counters should reset after flush")
	}
	if c.Total(EventBirth) != 2 {
		t.Errorf("totals should survive flush, got %d", c.Total(EventBirth))
	}
	if c.ShouldFlush(150) {
		t.Error("new window should start at the flush tick")
	}
}

func TestEventNames(t *testing.T) {
	for e := EventType(0); int(e) < NumEventTypes; e++ {
		if e.String() == "" || e.String() == "unknown" {
			t.Errorf("event %d has no name", e)
		}
	}
}

func TestBookmarkExtinctionOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{WindowEndTick: 1, Population: 50})

	count := 0
	for tick := uint64(2); tick < 6; tick++ {
		for _, b := range bd.Check(WindowStats{WindowEndTick: tick}) {
			if b.Type == BookmarkExtinction {
				count++
			}
		}
	}
	if count != 1 {
		t.Errorf("expected one extinction bookmark, got %d", count)
	}
}

func TestBookmarkCrashAndBoom(t *testing.T) {
	bd := NewBookmarkDetector(10)

	has := func(bms []Bookmark, typ BookmarkType) bool {
		for _, b := range bms {
			if b.Type == typ {
				return true
			}
		}
		return false
	}

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: uint64(i), Population: 1000})
	}
	if !has(bd.Check(WindowStats{WindowEndTick: 3, Population: 400}), BookmarkPopulationCrash) {
		t.Error("expected population_crash")
	}
	if !has(bd.Check(WindowStats{WindowEndTick: 4, Population: 1300}), BookmarkPopulationBoom) {
		t.Error("expected population_boom")
	}
}

func TestBookmarkStable(t *testing.T) {
	bd := NewBookmarkDetector(10)

	found := 0
	for i := 0; i < 20; i++ {
		for _, b := range bd.Check(WindowStats{WindowEndTick: uint64(i), Population: 500 + i%3}) {
			if b.Type == BookmarkStablePopulation {
				found++
			}
		}
	}
	if found != 1 {
		t.Errorf("expected exactly one stable_population bookmark, got %d", found)
	}
}

func TestBookmarkLineage(t *testing.T) {
	bd := NewBookmarkDetector(5)

	var marks []Bookmark
	for _, g := range []float64{3, 12, 15, 150, 2000} {
		for _, b := range bd.Check(WindowStats{Population: 1, GenerationMax: g}) {
			if b.Type == BookmarkDeepLineage {
				marks = append(marks, b)
			}
		}
	}
	if len(marks) != 3 {
		t.Errorf("expected 3 lineage bookmarks, got %d: %+v", len(marks), marks)
	}
}

func TestPerfCollector(t *testing.T) {
	pc := NewPerfCollector(4)

	for i := 0; i < 6; i++ {
		pc.Record(PerfSample{Duration: time.Millisecond, Ticks: 1000})
	}
	pc.Start()
	time.Sleep(time.Millisecond)
	pc.End(500)

	stats := pc.Stats()
	if stats.AvgAdvance <= 0 {
		t.Error("expected positive average advance duration")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive throughput")
	}
	if stats.MaxAdvance < time.Millisecond {
		t.Errorf("max advance %v below recorded sample", stats.MaxAdvance)
	}
	t.Logf("perf: %+v", stats)
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v, %v", om, err)
	}
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("nil manager write: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager close: %v", err)
	}
}

func TestOutputManagerCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: uint64(i * 10), Population: i}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkExtinction, Tick: 30, Description: "gone"}); err != nil {
		t.Fatalf("WriteBookmark: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "window_end" || rows[3][0] != "30" {
		t.Errorf("unexpected csv content: %v", rows)
	}
}

func TestSnapshotSaveLoad(t *testing.T) {
	dir := t.TempDir()

	snapshot := &Snapshot{
		Version:     SnapshotVersion,
		Seed:        42,
		RNGState:    []byte{1, 2, 3},
		FieldWidth:  8,
		FieldHeight: 4,
		Tick:        1000,
		Cursor:      1,
		Cells: []CellState{
			{
				X: 1, Y: 2, DX: 1, Color: 0xabcdef,
				Energy: 0.75, Metabolism: 0.01, Generation: 3,
				Neurons:   []float32{1, 0.5},
				Combiners: []uint8{0, 1},
				Synapses:  []SynapseState{{Src: 0, Dst: 20, Weight: -0.5}},
			},
			{X: 3, Y: 0, DY: -1, Sleeping: true},
		},
		Bookmark: &Bookmark{Type: BookmarkPopulationCrash, Tick: 1000, Description: "test"},
	}

	path, err := SaveSnapshot(snapshot, dir)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if filepath.Base(path) != "snapshot_1000_population_crash.json" {
		t.Errorf("unexpected filename %s", filepath.Base(path))
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !reflect.DeepEqual(snapshot.Cells[0], loaded.Cells[0]) {
		t.Errorf("cell mismatch:\n got %+v\nwant %+v", loaded.Cells[0], snapshot.Cells[0])
	}
	if loaded.Tick != 1000 || loaded.Cursor != 1 || string(loaded.RNGState) != string(snapshot.RNGState) {
		t.Errorf("header mismatch: %+v", loaded)
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version error")
	}
}
