package session

import (
	"github.com/tessro/uampc/internal/vtable"
)

// Pane is a scrollable list backed by a virtual table. Heights are in
// terminal lines, one line per row.
type Pane[T any, K comparable] struct {
	Table    *vtable.Table[T, K]
	Rows     *vtable.Rows[T, K]
	Scroller *vtable.Scroller

	items   func() []T
	id      func(T) K
	current func() (K, bool)
	cursor  int
}

// paneViewport reports the overscan rows as part of the client height, so
// the window also covers the last visible line when rows above the
// viewport are materialized.
type paneViewport struct {
	*vtable.Scroller
}

func (v paneViewport) ClientHeight() int {
	return v.Scroller.ClientHeight() + vtable.DefaultOverscan
}

func newPane[T any, K comparable](frames vtable.Frames, items func() []T, id func(T) K, current func() (K, bool), autoScroll bool) *Pane[T, K] {
	p := &Pane[T, K]{
		Rows:     vtable.NewRows[T, K](),
		Scroller: vtable.NewScroller(0),
		items:    items,
		id:       id,
		current:  current,
	}
	p.Table = vtable.New(vtable.Config[T, K]{
		Items:      items,
		ID:         id,
		Current:    current,
		AutoScroll: autoScroll,
		Viewport:   paneViewport{p.Scroller},
		Surface:    p.Rows,
		Frames:     frames,
	})
	p.Scroller.OnScroll(p.Table.Update)
	return p
}

// Render rebuilds the pane and keeps the scroll offset and cursor inside
// the content. A centered render leaves the current item on screen.
func (p *Pane[T, K]) Render() {
	p.Table.Render()
	p.Scroller.SetScrollTop(p.Scroller.ScrollTop())
	p.cursor = max(0, min(p.cursor, p.Len()-1))
	if p.Table.Centered() {
		p.reveal(p.currentIndex())
	}
}

func (p *Pane[T, K]) currentIndex() int {
	current, ok := p.current()
	if !ok {
		return -1
	}
	for i, it := range p.items() {
		if p.id(it) == current {
			return i
		}
	}
	return -1
}

// Resize sets the visible height and rebuilds.
func (p *Pane[T, K]) Resize(height int) {
	p.Scroller.SetHeight(height)
	p.Render()
}

// Len returns the number of items in the list.
func (p *Pane[T, K]) Len() int {
	return len(p.items())
}

// Cursor returns the selected index.
func (p *Pane[T, K]) Cursor() int {
	return p.cursor
}

// Selected returns the item under the cursor.
func (p *Pane[T, K]) Selected() (T, bool) {
	items := p.items()
	if p.cursor < 0 || p.cursor >= len(items) {
		var zero T
		return zero, false
	}
	return items[p.cursor], true
}

// Move moves the cursor by delta and scrolls it into view.
func (p *Pane[T, K]) Move(delta int) {
	p.MoveTo(p.cursor + delta)
}

// MoveTo places the cursor at index i and scrolls it into view.
func (p *Pane[T, K]) MoveTo(i int) {
	n := p.Len()
	if n == 0 {
		p.cursor = 0
		return
	}
	p.cursor = max(0, min(i, n-1))
	p.reveal(p.cursor)
}

// reveal scrolls the least amount that puts index i on screen.
func (p *Pane[T, K]) reveal(i int) {
	if i < 0 {
		return
	}
	top, h := p.Scroller.ScrollTop(), p.Scroller.ClientHeight()
	switch {
	case i < top:
		p.Scroller.SetScrollTop(i)
	case h > 0 && i >= top+h:
		p.Scroller.SetScrollTop(i - h + 1)
	}
}

// Visible returns the materialized rows on screen, top first. Lines with
// no materialized row are reported with ok false.
func (p *Pane[T, K]) Visible(fn func(line int, row vtable.Row[T, K], ok bool)) {
	top := p.Scroller.ScrollTop()
	for line := 0; line < p.Scroller.ClientHeight(); line++ {
		if top+line >= p.Len() {
			return
		}
		row, ok := p.Rows.Find(top + line)
		fn(line, row, ok)
	}
}
