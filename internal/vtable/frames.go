package vtable

// FrameQueue collects callbacks until the host reports a drawn frame.
type FrameQueue struct {
	pending []func()
}

// AfterFrame queues fn to run on the next Flush.
func (q *FrameQueue) AfterFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// Pending reports whether callbacks are waiting for a frame.
func (q *FrameQueue) Pending() bool {
	return len(q.pending) > 0
}

// Flush runs the callbacks queued before the call and returns how many
// ran. Callbacks queued while flushing wait for the next frame.
func (q *FrameQueue) Flush() int {
	fns := q.pending
	q.pending = nil
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}
