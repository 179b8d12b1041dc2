package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkExtinction       BookmarkType = "extinction"
	BookmarkPopulationCrash  BookmarkType = "population_crash"
	BookmarkPopulationBoom   BookmarkType = "population_boom"
	BookmarkStablePopulation BookmarkType = "stable_population"
	BookmarkDeepLineage      BookmarkType = "deep_lineage"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        uint64       `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments from consecutive windows.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentPeak   int     // peak population since the last crash
	recentLow    int     // lowest population since the last boom
	stableCount  int     // consecutive low-variance windows
	lineageMark  float64 // next generation depth worth reporting
	wasExtinct   bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
		recentLow:   -1,
		lineageMark: 10,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkExtinction,
		bd.checkCrash,
		bd.checkBoom,
		bd.checkStable,
		bd.checkLineage,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	if stats.Population > bd.recentPeak {
		bd.recentPeak = stats.Population
	}
	if bd.recentLow < 0 || stats.Population < bd.recentLow {
		bd.recentLow = stats.Population
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the most recent windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	size := bd.historyIdx
	if bd.historyFull {
		size = bd.historySize
	}
	if n > size {
		n = size
	}
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	extinct := stats.Population == 0
	defer func() { bd.wasExtinct = extinct }()

	if !extinct || bd.wasExtinct {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkExtinction,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Population died out (peak %d)", bd.recentPeak),
	}
}

func (bd *BookmarkDetector) checkCrash(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 || stats.Population == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Population)/float64(bd.recentPeak)
	if drop > 0.30 && stats.Population < bd.recentPeak-10 {
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Population

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Population),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkBoom(stats WindowStats) *Bookmark {
	if bd.recentLow < 0 {
		return nil
	}

	low := bd.recentLow
	if low < 1 {
		low = 1
	}
	if stats.Population >= low*3 && stats.Population >= low+20 {
		bd.recentLow = stats.Population

		return &Bookmark{
			Type:        BookmarkPopulationBoom,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population grew from %d to %d", low, stats.Population),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStable(stats WindowStats) *Bookmark {
	if stats.Population < 10 {
		bd.stableCount = 0
		return nil
	}

	window := bd.recent(4)
	if len(window) < 4 {
		return nil
	}

	pops := make([]float64, len(window))
	for i, h := range window {
		pops[i] = float64(h.Population)
	}
	mean, variance := stat.PopMeanVariance(pops, nil)

	// CV^2 < 0.04 means CV < 0.2
	if mean > 0 && variance/(mean*mean) < 0.04 {
		bd.stableCount++
	} else {
		bd.stableCount = 0
	}

	if bd.stableCount == 5 {
		return &Bookmark{
			Type:        BookmarkStablePopulation,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population stable around %.0f over 5+ windows", mean),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkLineage(stats WindowStats) *Bookmark {
	if stats.GenerationMax < bd.lineageMark {
		return nil
	}
	mark := bd.lineageMark
	for bd.lineageMark <= stats.GenerationMax {
		bd.lineageMark *= 10
	}
	return &Bookmark{
		Type:        BookmarkDeepLineage,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("A lineage passed %.0f generations (max %.0f)", mark, stats.GenerationMax),
	}
}
