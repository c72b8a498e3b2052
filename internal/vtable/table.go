// Package vtable renders a bounded window of an arbitrarily long list.
//
// A Table decides which item indices are materialized on a Surface, based
// on the Viewport's scroll position and a fixed row height. Scrolling
// patches the surface by the rows entering and leaving the window only.
// A table may instead center its window on the current item, in which
// case it moves the viewport itself and ignores the scroll notification
// that move causes until the next frame.
package vtable

// DefaultOverscan is the number of rows materialized above the viewport.
const DefaultOverscan = 2

// Window is the half-open index range [Start, End) currently materialized.
type Window struct {
	Start int
	End   int
}

// Len returns the number of rows in the window.
func (w Window) Len() int {
	return w.End - w.Start
}

// Contains reports whether index i is inside the window.
func (w Window) Contains(i int) bool {
	return i >= w.Start && i < w.End
}

// Row is one materialized item, tagged with its stable id.
type Row[T any, K comparable] struct {
	Index  int
	ID     K
	Item   T
	Active bool
}

// Viewport is the scrollable area a table is displayed in. Heights and
// offsets share the unit of the row height.
type Viewport interface {
	ClientHeight() int
	ScrollTop() int
	SetScrollTop(top int)
}

// contentSizer is implemented by viewports that need the logical content
// height to clamp scrolling.
type contentSizer interface {
	SetContentHeight(h int)
}

// Surface receives the rows of the window. Rows are only ever added or
// removed at the edges.
type Surface[T any, K comparable] interface {
	Reset()
	SetSpacers(before, after int)
	PushFront(row Row[T, K])
	PushBack(row Row[T, K])
	PopFront()
	PopBack()
	SetActive(active func(id K) bool)
}

// Frames schedules work to run after the host has drawn the next frame.
type Frames interface {
	AfterFrame(fn func())
}

// Config describes a table.
type Config[T any, K comparable] struct {
	// Items returns the current item sequence.
	Items func() []T
	// ID returns an item's stable identity.
	ID func(T) K
	// Current returns the id to highlight, if any.
	Current func() (K, bool)

	RowHeight int
	// AutoScroll centers every Render on the current item.
	AutoScroll bool
	// Overscan rows are materialized above the viewport. Zero uses
	// DefaultOverscan.
	Overscan int

	Viewport Viewport
	Surface  Surface[T, K]
	Frames   Frames
}

// Table keeps a Surface in sync with the visible window of a list.
type Table[T any, K comparable] struct {
	cfg Config[T, K]

	start int
	end   int
	// centered is true while the last render was centered on the current
	// item and no scroll has happened since.
	centered bool
	// ignoreScroll suppresses Update until the next frame after a
	// programmatic scroll.
	ignoreScroll bool
}

// New creates a table. Nothing is materialized until Render.
func New[T any, K comparable](cfg Config[T, K]) *Table[T, K] {
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = 1
	}
	if cfg.Overscan <= 0 {
		cfg.Overscan = DefaultOverscan
	}
	if cfg.Current == nil {
		cfg.Current = func() (K, bool) {
			var zero K
			return zero, false
		}
	}
	return &Table[T, K]{cfg: cfg}
}

// Window returns the materialized index range.
func (t *Table[T, K]) Window() Window {
	return Window{Start: t.start, End: t.end}
}

// Centered reports whether the window was last positioned on the current
// item rather than derived from the scroll offset.
func (t *Table[T, K]) Centered() bool {
	return t.centered
}

// Suppressed reports whether scroll updates are currently ignored.
func (t *Table[T, K]) Suppressed() bool {
	return t.ignoreScroll
}

// Render rebuilds the surface from scratch. With AutoScroll the window is
// centered on the current item and the viewport is scrolled to match;
// the scroll notification that causes is ignored until the next frame.
func (t *Table[T, K]) Render() {
	items := t.cfg.Items()
	n := len(items)

	w, centered := Window{}, false
	if t.cfg.AutoScroll {
		w, centered = t.currentWindow(items)
	}
	if !centered {
		w = t.bufferWindow(n)
	}

	t.cfg.Surface.Reset()
	t.setSpacers(w, n)
	t.fill(items, w)
	t.start, t.end = w.Start, w.End
	t.centered = centered

	if centered {
		t.ignoreScroll = true
		t.cfg.Viewport.SetScrollTop((w.Start + t.cfg.Overscan) * t.cfg.RowHeight)
		t.cfg.Frames.AfterFrame(func() { t.ignoreScroll = false })
	}
}

// Update re-windows after a scroll. Only rows entering or leaving the
// window are touched; rows that stay keep their surface entries.
func (t *Table[T, K]) Update() {
	if t.ignoreScroll {
		return
	}
	t.centered = false

	items := t.cfg.Items()
	n := len(items)
	w := t.bufferWindow(n)
	old := t.Window()

	t.setSpacers(w, n)
	if old.End > n || w.Start >= old.End || w.End <= old.Start {
		// Nothing to keep.
		t.cfg.Surface.Reset()
		t.fill(items, w)
		t.start, t.end = w.Start, w.End
		return
	}

	current, ok := t.cfg.Current()
	for i := old.Start - 1; i >= w.Start; i-- {
		t.cfg.Surface.PushFront(t.row(items, i, current, ok))
	}
	for i := old.End; i < w.End; i++ {
		t.cfg.Surface.PushBack(t.row(items, i, current, ok))
	}
	for i := old.Start; i < w.Start; i++ {
		t.cfg.Surface.PopFront()
	}
	for i := old.End; i > w.End; i-- {
		t.cfg.Surface.PopBack()
	}
	t.start, t.end = w.Start, w.End
}

// Highlight re-marks the active rows by the current id.
func (t *Table[T, K]) Highlight() {
	current, ok := t.cfg.Current()
	t.cfg.Surface.SetActive(func(id K) bool {
		return ok && id == current
	})
}

// bufferWindow derives the window from the scroll offset.
func (t *Table[T, K]) bufferWindow(n int) Window {
	rh := t.cfg.RowHeight
	visible := ceilDiv(t.cfg.Viewport.ClientHeight(), rh) + 1

	start := max(0, t.cfg.Viewport.ScrollTop()/rh-t.cfg.Overscan)
	// A scroll offset past the content (the list shrank) still yields a
	// full window at the end.
	start = min(start, max(0, n-visible))
	end := min(n, start+visible)
	return Window{Start: start, End: end}
}

// currentWindow centers the window on the current item. It reports false
// when there is no current item in the list.
func (t *Table[T, K]) currentWindow(items []T) (Window, bool) {
	current, ok := t.cfg.Current()
	if !ok {
		return Window{}, false
	}
	pos := -1
	for i, it := range items {
		if t.cfg.ID(it) == current {
			pos = i
			break
		}
	}
	if pos < 0 {
		return Window{}, false
	}

	n := len(items)
	visible := ceilDiv(t.cfg.Viewport.ClientHeight(), t.cfg.RowHeight)
	// ceil(pos - visible/2)
	top := pos - visible/2
	start := max(0, min(top, n-visible))
	end := min(n, start+visible)
	return Window{Start: start, End: end}, true
}

func (t *Table[T, K]) setSpacers(w Window, n int) {
	rh := t.cfg.RowHeight
	t.cfg.Surface.SetSpacers(w.Start*rh, (n-w.End)*rh)
	if cs, ok := t.cfg.Viewport.(contentSizer); ok {
		cs.SetContentHeight(n * rh)
	}
}

func (t *Table[T, K]) fill(items []T, w Window) {
	current, ok := t.cfg.Current()
	for i := w.Start; i < w.End; i++ {
		t.cfg.Surface.PushBack(t.row(items, i, current, ok))
	}
}

func (t *Table[T, K]) row(items []T, i int, current K, ok bool) Row[T, K] {
	id := t.cfg.ID(items[i])
	return Row[T, K]{
		Index:  i,
		ID:     id,
		Item:   items[i],
		Active: ok && id == current,
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
