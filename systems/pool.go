// Package systems provides the cell storage, spatial index and per-cell rules
// the simulation is built from.
package systems

import "github.com/pthm-cable/mitosis/components"

// nilIndex terminates the live list.
const nilIndex int32 = -1

// Handle identifies a pool slot. A handle goes stale when its slot is
// released; the zero Handle never refers to a live cell.
type Handle struct {
	index int32
	gen   uint32 // slot generation + 1, so zero is never issued
}

// IsZero reports whether h is the empty handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

// Index returns the slot index. Only meaningful for non-zero handles.
func (h Handle) Index() int { return int(h.index) }

type slot struct {
	cell components.Cell
	gen  uint32
	live bool
	next int32
	prev int32
}

// Pool is a fixed-capacity arena of cells. Live slots are threaded through a
// doubly linked list; new cells are prepended at the head.
type Pool struct {
	slots []slot
	free  []int32 // stack of free slot indices
	head  int32
	live  int
}

// NewPool creates a pool with capacity slots, all free.
func NewPool(capacity int) *Pool {
	p := &Pool{
		slots: make([]slot, capacity),
		free:  make([]int32, 0, capacity),
		head:  nilIndex,
	}
	// Push in reverse so the first allocation takes slot 0.
	for i := capacity - 1; i >= 0; i-- {
		p.free = append(p.free, int32(i))
	}
	return p
}

// Cap returns the total number of slots.
func (p *Pool) Cap() int { return len(p.slots) }

// Len returns the number of live cells.
func (p *Pool) Len() int { return p.live }

// Free returns the number of free slots.
func (p *Pool) Free() int { return len(p.free) }

// Allocate takes a free slot and links it at the head of the live list.
// The returned cell holds whatever the slot last contained; callers must
// overwrite every field. Returns false when the pool is full.
func (p *Pool) Allocate() (Handle, *components.Cell, bool) {
	n := len(p.free)
	if n == 0 {
		return Handle{}, nil, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]

	s := &p.slots[idx]
	s.live = true
	s.prev = nilIndex
	s.next = p.head
	if p.head != nilIndex {
		p.slots[p.head].prev = idx
	}
	p.head = idx
	p.live++

	return Handle{index: idx, gen: s.gen + 1}, &s.cell, true
}

// Release unlinks the cell and returns its slot to the free list.
// Releasing a stale or zero handle is a no-op returning false.
func (p *Pool) Release(h Handle) bool {
	s := p.slot(h)
	if s == nil {
		return false
	}

	if s.prev != nilIndex {
		p.slots[s.prev].next = s.next
	} else {
		p.head = s.next
	}
	if s.next != nilIndex {
		p.slots[s.next].prev = s.prev
	}

	s.live = false
	s.gen++
	s.next, s.prev = nilIndex, nilIndex
	p.free = append(p.free, h.index)
	p.live--
	return true
}

// Get returns the cell behind h, or false if h is stale.
func (p *Pool) Get(h Handle) (*components.Cell, bool) {
	s := p.slot(h)
	if s == nil {
		return nil, false
	}
	return &s.cell, true
}

// Alive reports whether h refers to a live cell.
func (p *Pool) Alive(h Handle) bool { return p.slot(h) != nil }

// Head returns the first live cell in link order, or the zero handle.
func (p *Pool) Head() Handle { return p.handleAt(p.head) }

// Next returns the cell after h in link order. It returns the zero handle at
// the end of the list or when h is stale.
func (p *Pool) Next(h Handle) Handle {
	s := p.slot(h)
	if s == nil {
		return Handle{}
	}
	return p.handleAt(s.next)
}

// Each calls fn for every live cell in link order. fn may release any cell:
// released cells not yet visited are skipped. If fn releases both the
// current cell and its successor, iteration stops. Cells allocated during
// iteration are prepended and therefore not visited. Iteration stops when fn
// returns false.
func (p *Pool) Each(fn func(Handle, *components.Cell) bool) {
	for h := p.Head(); !h.IsZero(); {
		next := p.Next(h)
		c, ok := p.Get(h)
		if !ok || !fn(h, c) {
			return
		}
		if p.Alive(h) {
			next = p.Next(h)
		} else if !p.Alive(next) {
			return
		}
		h = next
	}
}

// Reset releases every cell.
func (p *Pool) Reset() {
	for h := p.Head(); !h.IsZero(); h = p.Head() {
		p.Release(h)
	}
}

func (p *Pool) handleAt(idx int32) Handle {
	if idx == nilIndex {
		return Handle{}
	}
	return Handle{index: idx, gen: p.slots[idx].gen + 1}
}

func (p *Pool) slot(h Handle) *slot {
	if h.gen == 0 || h.index < 0 || int(h.index) >= len(p.slots) {
		return nil
	}
	s := &p.slots[h.index]
	if !s.live || s.gen+1 != h.gen {
		return nil
	}
	return s
}
