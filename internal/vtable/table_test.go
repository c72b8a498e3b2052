package vtable

import (
	"testing"

	"github.com/go-test/deep"
)

type fixture struct {
	items    []int
	current  int
	hasCur   bool
	scroller *Scroller
	rows     *Rows[int, int]
	frames   *FrameQueue
	table    *Table[int, int]
}

func newFixture(n, height, rowHeight int, autoScroll bool) *fixture {
	f := &fixture{
		items:    make([]int, n),
		scroller: NewScroller(height),
		rows:     NewRows[int, int](),
		frames:   &FrameQueue{},
	}
	for i := range f.items {
		f.items[i] = 1000 + i
	}
	f.table = New(Config[int, int]{
		Items:      func() []int { return f.items },
		ID:         func(v int) int { return v },
		Current:    func() (int, bool) { return f.current, f.hasCur },
		RowHeight:  rowHeight,
		AutoScroll: autoScroll,
		Viewport:   f.scroller,
		Surface:    f.rows,
		Frames:     f.frames,
	})
	f.scroller.OnScroll(f.table.Update)
	return f
}

// checkRows verifies the surface holds exactly the window, in order.
func (f *fixture) checkRows(t *testing.T) {
	t.Helper()
	w := f.table.Window()
	if f.rows.Len() != w.Len() {
		t.Fatalf("surface has %d rows, window %+v", f.rows.Len(), w)
	}
	for i := 0; i < f.rows.Len(); i++ {
		row := f.rows.At(i)
		if row.Index != w.Start+i {
			t.Fatalf("row %d has index %d, want %d", i, row.Index, w.Start+i)
		}
		if row.ID != f.items[row.Index] {
			t.Fatalf("row %d has id %d, want %d", i, row.ID, f.items[row.Index])
		}
	}
	before, after := f.rows.Spacers()
	rh := f.table.cfg.RowHeight
	if before != w.Start*rh || after != (len(f.items)-w.End)*rh {
		t.Errorf("spacers = (%d, %d), window %+v", before, after, w)
	}
}

func TestScrollDerivedWindow(t *testing.T) {
	f := newFixture(1000, 420, 42, false)
	f.table.Render()

	if diff := deep.Equal(f.table.Window(), Window{Start: 0, End: 11}); diff != nil {
		t.Errorf("initial window: %v", diff)
	}
	f.checkRows(t)

	f.scroller.SetScrollTop(4200)
	if diff := deep.Equal(f.table.Window(), Window{Start: 98, End: 109}); diff != nil {
		t.Errorf("after scroll: %v", diff)
	}
	f.checkRows(t)
}

func TestUpdateKeepsOverlap(t *testing.T) {
	f := newFixture(1000, 420, 42, false)
	f.table.Render()

	f.scroller.SetScrollTop(5 * 42)
	if diff := deep.Equal(f.table.Window(), Window{Start: 3, End: 14}); diff != nil {
		t.Fatal(diff)
	}
	if f.rows.Resets != 1 {
		t.Errorf("Resets = %d, want 1", f.rows.Resets)
	}
	if f.rows.Pushed != 11+3 || f.rows.Popped != 3 {
		t.Errorf("Pushed = %d, Popped = %d, want 14, 3", f.rows.Pushed, f.rows.Popped)
	}
	f.checkRows(t)

	f.scroller.SetScrollTop(0)
	if diff := deep.Equal(f.table.Window(), Window{Start: 0, End: 11}); diff != nil {
		t.Fatal(diff)
	}
	if f.rows.Pushed != 14+3 || f.rows.Popped != 3+3 {
		t.Errorf("Pushed = %d, Popped = %d, want 17, 6", f.rows.Pushed, f.rows.Popped)
	}
	f.checkRows(t)
}

func TestUpdateDisjointRebuildsWindowOnly(t *testing.T) {
	f := newFixture(1000, 420, 42, false)
	f.table.Render()

	f.scroller.SetScrollTop(500 * 42)
	if f.rows.Resets != 2 {
		t.Errorf("Resets = %d, want 2", f.rows.Resets)
	}
	if f.rows.Pushed != 11 {
		t.Errorf("Pushed = %d, want 11", f.rows.Pushed)
	}
	f.checkRows(t)
}

func TestWindowBounds(t *testing.T) {
	for _, n := range []int{0, 1, 5, 11, 12, 300} {
		f := newFixture(n, 420, 42, false)
		f.table.Render()
		visible := 10
		for top := 0; top <= n*42+100; top += 17 {
			f.scroller.SetScrollTop(top)
			w := f.table.Window()
			if w.Start < 0 || w.Start > w.End || w.End > n {
				t.Fatalf("n=%d top=%d: window %+v out of bounds", n, top, w)
			}
			if w.Len() > visible+2*DefaultOverscan {
				t.Fatalf("n=%d top=%d: window %+v too large", n, top, w)
			}
			f.checkRows(t)
		}
	}
}

func TestCenteredRenderSuppressesOwnScroll(t *testing.T) {
	f := newFixture(1000, 420, 42, true)
	f.current, f.hasCur = 1500, true

	f.table.Render()
	if diff := deep.Equal(f.table.Window(), Window{Start: 495, End: 505}); diff != nil {
		t.Fatalf("centered window: %v", diff)
	}
	if got := f.scroller.ScrollTop(); got != 497*42 {
		t.Errorf("ScrollTop() = %d, want %d", got, 497*42)
	}
	if !f.table.Suppressed() || !f.table.Centered() {
		t.Fatal("table should be suppressed and centered after centered render")
	}
	// The programmatic scroll fired Update, which must have been ignored.
	if f.rows.Resets != 1 || f.rows.Pushed != 10 {
		t.Errorf("Resets = %d, Pushed = %d, want 1, 10", f.rows.Resets, f.rows.Pushed)
	}

	// A late scroll event before the frame is still ignored.
	f.table.Update()
	if diff := deep.Equal(f.table.Window(), Window{Start: 495, End: 505}); diff != nil {
		t.Errorf("window changed before frame: %v", diff)
	}

	if ran := f.frames.Flush(); ran != 1 {
		t.Errorf("Flush() = %d, want 1", ran)
	}
	if f.table.Suppressed() {
		t.Fatal("guard still set after frame")
	}

	f.scroller.ScrollBy(42)
	if diff := deep.Equal(f.table.Window(), Window{Start: 496, End: 507}); diff != nil {
		t.Errorf("after user scroll: %v", diff)
	}
	if f.table.Centered() {
		t.Error("Centered() = true after user scroll")
	}
	f.checkRows(t)
}

func TestCenteredClampsAtEnds(t *testing.T) {
	tests := []struct {
		name    string
		current int
		want    Window
	}{
		{"first", 1000, Window{Start: 0, End: 10}},
		{"near start", 1003, Window{Start: 0, End: 10}},
		{"last", 1999, Window{Start: 990, End: 1000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(1000, 420, 42, true)
			f.current, f.hasCur = tt.current, true
			f.table.Render()
			if diff := deep.Equal(f.table.Window(), tt.want); diff != nil {
				t.Error(diff)
			}
			f.checkRows(t)
		})
	}
}

func TestCenteredShortList(t *testing.T) {
	f := newFixture(4, 420, 42, true)
	f.current, f.hasCur = 1002, true
	f.table.Render()
	if diff := deep.Equal(f.table.Window(), Window{Start: 0, End: 4}); diff != nil {
		t.Error(diff)
	}
}

func TestAutoScrollWithoutCurrentFallsBack(t *testing.T) {
	f := newFixture(1000, 420, 42, true)
	f.table.Render()
	if diff := deep.Equal(f.table.Window(), Window{Start: 0, End: 11}); diff != nil {
		t.Error(diff)
	}
	if f.table.Suppressed() || f.frames.Pending() {
		t.Error("fallback render should not set the guard")
	}
}

func TestHighlightByID(t *testing.T) {
	f := newFixture(100, 10, 1, false)
	f.current, f.hasCur = 1003, true
	f.table.Render()

	active := func() []int {
		var out []int
		for _, r := range f.rows.All() {
			if r.Active {
				out = append(out, r.ID)
			}
		}
		return out
	}
	if diff := deep.Equal(active(), []int{1003}); diff != nil {
		t.Error(diff)
	}

	f.current = 1005
	f.table.Highlight()
	if diff := deep.Equal(active(), []int{1005}); diff != nil {
		t.Error(diff)
	}

	// Rows entering on scroll pick up the current id too.
	f.current = 1012
	f.table.Highlight()
	if got := active(); len(got) != 0 {
		t.Errorf("active = %v, want none before scroll", got)
	}
	f.scroller.SetScrollTop(5)
	if diff := deep.Equal(active(), []int{1012}); diff != nil {
		t.Errorf("after scroll: %v", diff)
	}

	f.hasCur = false
	f.table.Highlight()
	if got := active(); len(got) != 0 {
		t.Errorf("active = %v, want none", got)
	}
}

func TestUpdateAfterListShrinks(t *testing.T) {
	f := newFixture(1000, 420, 42, false)
	f.table.Render()
	f.scroller.SetScrollTop(4200)

	f.items = f.items[:50]
	f.table.Update()
	if diff := deep.Equal(f.table.Window(), Window{Start: 39, End: 50}); diff != nil {
		t.Error(diff)
	}
	f.checkRows(t)
}
