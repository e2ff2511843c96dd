package selector

import (
	"sort"
	"sync"
)

// PointerEvent is a pointer press in screen cells.
type PointerEvent struct {
	X, Y int
}

// Rect is a screen region in cells.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Union returns the smallest Rect covering r and o. Empty rects are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Width <= 0 || r.Height <= 0 {
		return o
	}
	if o.Width <= 0 || o.Height <= 0 {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.Width, o.X+o.Width), max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// PointerHub is the application-wide pointer-down listener. Controls
// subscribe while mounted and release the subscription on teardown.
type PointerHub struct {
	mu   sync.Mutex
	next int
	subs map[int]func(PointerEvent)
}

// NewPointerHub returns an empty hub.
func NewPointerHub() *PointerHub {
	return &PointerHub{subs: make(map[int]func(PointerEvent))}
}

// Subscribe registers fn for every dispatched press. The returned function
// removes the subscription; calling it more than once is harmless.
func (h *PointerHub) Subscribe(fn func(PointerEvent)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	h.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
		})
	}
}

// Dispatch delivers ev to every subscriber in subscription order. Handlers
// run outside the hub's lock, so they may unsubscribe.
func (h *PointerHub) Dispatch(ev PointerEvent) {
	h.mu.Lock()
	ids := make([]int, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(PointerEvent), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, h.subs[id])
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Len returns the number of live subscriptions.
func (h *PointerHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
