package vtable

// Scroller is a Viewport that notifies its listeners synchronously
// whenever the scroll offset changes, including programmatic changes.
type Scroller struct {
	height    int
	content   int
	top       int
	listeners []func()
}

// NewScroller creates a viewport of the given client height.
func NewScroller(height int) *Scroller {
	return &Scroller{height: height}
}

// OnScroll registers fn to run after every scroll offset change.
func (s *Scroller) OnScroll(fn func()) {
	s.listeners = append(s.listeners, fn)
}

// ClientHeight returns the visible height in rows.
func (s *Scroller) ClientHeight() int {
	return s.height
}

// ScrollTop returns the scroll offset.
func (s *Scroller) ScrollTop() int {
	return s.top
}

// SetScrollTop moves the viewport, clamped to the content.
func (s *Scroller) SetScrollTop(top int) {
	top = max(0, min(top, s.maxTop()))
	if top == s.top {
		return
	}
	s.top = top
	for _, fn := range s.listeners {
		fn()
	}
}

// ScrollBy moves the viewport by delta.
func (s *Scroller) ScrollBy(delta int) {
	s.SetScrollTop(s.top + delta)
}

// SetHeight resizes the viewport.
func (s *Scroller) SetHeight(h int) {
	s.height = max(0, h)
	if s.top > s.maxTop() {
		s.SetScrollTop(s.maxTop())
	}
}

// SetContentHeight records the logical content height.
func (s *Scroller) SetContentHeight(h int) {
	s.content = max(0, h)
}

// ContentHeight returns the logical content height.
func (s *Scroller) ContentHeight() int {
	return s.content
}

func (s *Scroller) maxTop() int {
	return max(0, s.content-s.height)
}
