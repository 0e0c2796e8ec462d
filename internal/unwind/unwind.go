package unwind

import "runtime"

// DefaultDepth is the frame cap used by full-backtrace reporting.
const DefaultDepth = 25

// CallerDepth is the shallower cap used when only a single calling frame
// needs to be attributed.
const CallerDepth = 15

// Capture records up to max return addresses of the current goroutine's
// call stack, starting above the caller of Capture plus skip additional
// frames. The returned slice may be shorter than max near the base of the
// stack and is empty when the runtime cannot unwind at all. Capture never
// fails and never panics.
func Capture(skip, max int) []uintptr {
	if max <= 0 {
		return nil
	}
	pcs := make([]uintptr, max)
	// +2 accounts for runtime.Callers itself and this function.
	n := runtime.Callers(skip+2, pcs)
	if n < 0 {
		n = 0
	}
	return pcs[:n]
}

// Cursor walks a captured address list exactly once.
type Cursor struct {
	pcs  []uintptr
	next int
}

// NewCursor wraps a captured address list.
func NewCursor(pcs []uintptr) *Cursor {
	return &Cursor{pcs: pcs}
}

// Next returns the next captured address, or false once the capture is
// exhausted.
func (c *Cursor) Next() (uintptr, bool) {
	if c == nil || c.next >= len(c.pcs) {
		return 0, false
	}
	pc := c.pcs[c.next]
	c.next++
	return pc, true
}

// Remaining reports how many addresses have not been consumed yet.
func (c *Cursor) Remaining() int {
	if c == nil {
		return 0
	}
	return len(c.pcs) - c.next
}
