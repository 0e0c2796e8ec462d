package diag

import "sync"

// Registry is the process-wide set of handlers, newest-registered first.
// One mutex covers every mutation and the notify snapshot; it is coarse on
// purpose, since registration and notification are rare and brief.
type Registry struct {
	mu       sync.Mutex
	handlers []*Handler // index 0 = newest
}

// Register makes h visible to the pipeline. Registering an already-present
// handler unlinks it first, so a handler is never notified twice per
// diagnostic and re-registration always moves it to the head.
func (r *Registry) Register(h *Handler) {
	if h == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unlink(h)
	r.handlers = append(r.handlers, nil)
	copy(r.handlers[1:], r.handlers)
	r.handlers[0] = h
}

// Unregister removes h by identity. Absent handlers are a no-op, not an
// error.
func (r *Registry) Unregister(h *Handler) {
	if h == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unlink(h)
}

// unlink splices h out of the list. Caller holds r.mu.
func (r *Registry) unlink(h *Handler) {
	for i, cur := range r.handlers {
		if cur == h {
			r.handlers = append(r.handlers[:i], r.handlers[i+1:]...)
			return
		}
	}
}

// Len reports the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers)
}

// snapshot copies the current list so callers can invoke handlers without
// holding the lock. The notified set is therefore atomic with respect to
// registry mutation, while handlers remain free to re-enter the registry.
func (r *Registry) snapshot() []*Handler {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Handler, len(r.handlers))
	copy(out, r.handlers)
	return out
}

// notify invokes every live handler, newest-registered first. A panicking
// handler is absorbed so the remaining handlers still run.
func (r *Registry) notify(d Diagnostic) {
	for _, h := range r.snapshot() {
		invoke(h, d)
	}
}

func invoke(h *Handler, d Diagnostic) {
	if h == nil || h.Func == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	h.Func(h.UserData, d.Function, d.File, d.Line, d.Err, d.Message, d.EditorNotify, d.Kind)
}
