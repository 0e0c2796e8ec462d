package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"faultline/internal/symbolize"
	"faultline/internal/unwind"
)

// Bus owns the diagnostic pipeline: an optional sink, the handler registry,
// and the stderr fallback. The package-level functions operate on a default
// bus; tests construct isolated instances with New.
type Bus struct {
	registry Registry

	mu       sync.RWMutex
	sink     Sink
	fallback io.Writer
	resolver symbolize.Resolver
	depth    int
}

// New returns a bus with no sink attached, the stderr fallback, the runtime
// symbol resolver (with the platform symbolication tool when one exists)
// and the default backtrace depth.
func New() *Bus {
	return &Bus{
		fallback: os.Stderr,
		resolver: &symbolize.RuntimeResolver{Tool: symbolize.DefaultSymbolicator()},
		depth:    unwind.DefaultDepth,
	}
}

// SetSink attaches the sink. A nil sink detaches it, returning the bus to
// the fallback path; both transitions are expected during process startup
// and teardown.
func (b *Bus) SetSink(s Sink) {
	b.mu.Lock()
	b.sink = s
	b.mu.Unlock()
}

// SetFallbackWriter redirects the no-sink fallback output. Nil restores
// stderr.
func (b *Bus) SetFallbackWriter(w io.Writer) {
	b.mu.Lock()
	if w == nil {
		w = os.Stderr
	}
	b.fallback = w
	b.mu.Unlock()
}

// SetResolver swaps the symbol resolver used by backtrace reports. Nil is
// ignored.
func (b *Bus) SetResolver(r symbolize.Resolver) {
	if r == nil {
		return
	}
	b.mu.Lock()
	b.resolver = r
	b.mu.Unlock()
}

// SetBacktraceDepth bounds full-backtrace captures. Values below 1 are
// ignored.
func (b *Bus) SetBacktraceDepth(n int) {
	if n < 1 {
		return
	}
	b.mu.Lock()
	b.depth = n
	b.mu.Unlock()
}

// Register makes h visible to every subsequent report.
func (b *Bus) Register(h *Handler) { b.registry.Register(h) }

// Unregister removes h; absent handlers are a no-op.
func (b *Bus) Unregister(h *Handler) { b.registry.Unregister(h) }

// Report is the canonical entry point. It renders through the sink when one
// is attached, otherwise prints a minimal fallback line to stderr, and in
// both cases notifies every registered handler. It never fails and never
// panics.
func (b *Bus) Report(function, file string, line int, errText, message string, editorNotify bool, kind Kind) {
	d := Diagnostic{
		Function:     function,
		File:         file,
		Line:         line,
		Err:          errText,
		Message:      message,
		EditorNotify: editorNotify,
		Kind:         kind,
	}

	b.mu.RLock()
	sink := b.sink
	fallback := b.fallback
	b.mu.RUnlock()

	if sink != nil {
		printToSink(sink, d)
	} else {
		// Diagnostics fired before the sink exists or after it is torn
		// down still have to reach a human.
		fmt.Fprintf(fallback, "ERROR: %s\n   at: %s (%s:%d)\n", d.Details(), d.Function, d.File, d.Line)
	}

	b.registry.notify(d)
}

func printToSink(s Sink, d Diagnostic) {
	defer func() {
		_ = recover()
	}()
	s.PrintError(d)
}

// ReportErr reports without a long message.
func (b *Bus) ReportErr(function, file string, line int, errText string, editorNotify bool, kind Kind) {
	b.Report(function, file, line, errText, "", editorNotify, kind)
}

// ReportBytes accepts raw byte strings and funnels them into Report after
// normalization to valid NFC UTF-8.
func (b *Bus) ReportBytes(function, file string, line int, errText, message []byte, editorNotify bool, kind Kind) {
	b.Report(function, file, line, normalize(errText), normalize(message), editorNotify, kind)
}

// ReportIndexOutOfBounds formats the fixed out-of-bounds message and reports
// it with KindError.
func (b *Bus) ReportIndexOutOfBounds(function, file string, line int, index, size int64, indexExpr, sizeExpr, message string, editorNotify, fatal bool) {
	prefix := ""
	if fatal {
		prefix = "FATAL: "
	}
	errText := fmt.Sprintf("%sIndex %s = %d is out of bounds (%s = %d).", prefix, indexExpr, index, sizeExpr, size)
	b.Report(function, file, line, errText, message, editorNotify, KindError)
}

// FlushOutput forces buffered diagnostic output to be written immediately.
// Call it before abort-like operations that would otherwise lose buffered
// lines. Best-effort on every stream.
func (b *Bus) FlushOutput() {
	b.mu.RLock()
	sink := b.sink
	b.mu.RUnlock()
	if sink != nil {
		_ = sink.Flush()
	}
	_ = os.Stdout.Sync()
}

// normalize converts raw bytes to NFC-normalized, valid UTF-8 text.
// Malformed sequences degrade to replacement runes rather than failing.
func normalize(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return strings.ToValidUTF8(string(norm.NFC.Bytes(b)), "�")
}
