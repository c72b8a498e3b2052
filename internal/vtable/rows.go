package vtable

// Rows is an in-memory Surface. Rows are kept in a ring buffer so both
// edges can grow and shrink in constant time.
type Rows[T any, K comparable] struct {
	buf  []Row[T, K]
	head int
	size int

	before int
	after  int

	// Pushed and Popped count edge operations since the last Reset.
	Pushed int
	Popped int
	// Resets counts full rebuilds.
	Resets int
}

// NewRows creates an empty surface.
func NewRows[T any, K comparable]() *Rows[T, K] {
	return &Rows[T, K]{}
}

// Len returns the number of materialized rows.
func (r *Rows[T, K]) Len() int {
	return r.size
}

// At returns the i-th materialized row, front first.
func (r *Rows[T, K]) At(i int) Row[T, K] {
	return r.buf[(r.head+i)%len(r.buf)]
}

// All returns a copy of the materialized rows, front first.
func (r *Rows[T, K]) All() []Row[T, K] {
	out := make([]Row[T, K], r.size)
	for i := range out {
		out[i] = r.At(i)
	}
	return out
}

// Spacers returns the extent before and after the materialized rows.
func (r *Rows[T, K]) Spacers() (before, after int) {
	return r.before, r.after
}

// Find returns the materialized row with the given item index.
func (r *Rows[T, K]) Find(index int) (Row[T, K], bool) {
	if r.size == 0 {
		return Row[T, K]{}, false
	}
	first := r.At(0).Index
	i := index - first
	if i < 0 || i >= r.size {
		return Row[T, K]{}, false
	}
	return r.At(i), true
}

func (r *Rows[T, K]) Reset() {
	clear(r.buf)
	r.head, r.size = 0, 0
	r.Pushed, r.Popped = 0, 0
	r.Resets++
}

func (r *Rows[T, K]) SetSpacers(before, after int) {
	r.before, r.after = before, after
}

func (r *Rows[T, K]) PushFront(row Row[T, K]) {
	r.grow()
	r.head = (r.head - 1 + len(r.buf)) % len(r.buf)
	r.buf[r.head] = row
	r.size++
	r.Pushed++
}

func (r *Rows[T, K]) PushBack(row Row[T, K]) {
	r.grow()
	r.buf[(r.head+r.size)%len(r.buf)] = row
	r.size++
	r.Pushed++
}

func (r *Rows[T, K]) PopFront() {
	if r.size == 0 {
		return
	}
	r.buf[r.head] = Row[T, K]{}
	r.head = (r.head + 1) % len(r.buf)
	r.size--
	r.Popped++
}

func (r *Rows[T, K]) PopBack() {
	if r.size == 0 {
		return
	}
	r.buf[(r.head+r.size-1)%len(r.buf)] = Row[T, K]{}
	r.size--
	r.Popped++
}

func (r *Rows[T, K]) SetActive(active func(id K) bool) {
	for i := 0; i < r.size; i++ {
		j := (r.head + i) % len(r.buf)
		r.buf[j].Active = active(r.buf[j].ID)
	}
}

func (r *Rows[T, K]) grow() {
	if r.size < len(r.buf) {
		return
	}
	buf := make([]Row[T, K], max(16, 2*len(r.buf)))
	for i := 0; i < r.size; i++ {
		buf[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	r.buf = buf
	r.head = 0
}
