// Package crashdump keeps a bounded in-memory record of recent diagnostics
// and can persist it to disk for post-mortem triage. The Recorder plugs into
// the diag bus as a regular handler; nothing here is on the reporting hot
// path beyond one mutex and a slice write.
package crashdump

import (
	"sync"
	"time"

	"faultline/internal/diag"
)

// DefaultRingSize bounds the recorder when the caller does not choose.
const DefaultRingSize = 128

// Entry is one recorded diagnostic plus its arrival time.
type Entry struct {
	Time         time.Time
	Function     string
	File         string
	Line         int
	Err          string
	Message      string
	EditorNotify bool
	Kind         uint8
}

// Recorder keeps the last N diagnostics in a circular buffer.
type Recorder struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
	handler  *diag.Handler
}

// NewRecorder creates a recorder with the given capacity.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	r := &Recorder{
		entries:  make([]Entry, capacity),
		capacity: capacity,
	}
	r.handler = &diag.Handler{
		UserData: r,
		Func:     record,
	}
	return r
}

// Handler returns the registry entry to pass to diag.Register. It is stable
// for the recorder's lifetime, so the same recorder is registered at most
// once.
func (r *Recorder) Handler() *diag.Handler { return r.handler }

func record(userdata any, function, file string, line int, errText, message string, editorNotify bool, kind diag.Kind) {
	r, ok := userdata.(*Recorder)
	if !ok {
		return
	}
	r.add(Entry{
		Time:         time.Now(),
		Function:     function,
		File:         file,
		Line:         line,
		Err:          errText,
		Message:      message,
		EditorNotify: editorNotify,
		Kind:         uint8(kind),
	})
}

func (r *Recorder) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.head] = e
	r.head = (r.head + 1) % r.capacity
	if r.head == 0 {
		r.full = true
	}
}

// Len reports how many diagnostics are currently held.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return r.capacity
	}
	return r.head
}

// Snapshot returns the recorded diagnostics in chronological order.
func (r *Recorder) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]Entry, r.head)
		copy(out, r.entries[:r.head])
		return out
	}

	out := make([]Entry, r.capacity)
	copy(out, r.entries[r.head:])
	copy(out[r.capacity-r.head:], r.entries[:r.head])
	return out
}
