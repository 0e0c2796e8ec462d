package diag

import (
	"strings"

	"faultline/internal/symbolize"
	"faultline/internal/unwind"
)

// ReportBacktrace walks the caller's stack, up to the configured depth, and
// issues one canonical report per frame. Each report carries the frame's
// resolved identity; the message is the frame's symbolication descriptor
// followed by errText. A frame the resolver cannot name still produces a
// report with placeholder identity, and never suppresses later frames.
func (b *Bus) ReportBacktrace(errText string, editorNotify bool, kind Kind) {
	b.reportBacktrace(errText, editorNotify, kind, 2)
}

// reportBacktrace starts the walk skip frames above itself.
func (b *Bus) reportBacktrace(errText string, editorNotify bool, kind Kind, skip int) {
	b.mu.RLock()
	resolver := b.resolver
	depth := b.depth
	b.mu.RUnlock()

	for _, pc := range unwind.Capture(skip, depth) {
		fr := resolver.Resolve(pc)
		b.Report(fr.Function, fr.Module, fr.Line, "", fr.Descriptor+errText, editorNotify, kind)
	}
}

// ReportErrorWithBacktrace attributes errText to the first stack frame whose
// resolved function name does not contain filter, and issues exactly one
// canonical report from that frame. The filter exists to skip the diagnostic
// machinery's own frames.
func (b *Bus) ReportErrorWithBacktrace(filter, errText string, editorNotify bool, kind Kind) {
	fr := b.callingFrame(filter, 2)
	b.Report(fr.Function, fr.Module, fr.Line, "", fr.Descriptor+errText, editorNotify, kind)
}

// callingFrame advances past skip frames above itself, then past every frame
// whose name contains filter, stopping at the first non-match or, failing
// that, the last captured frame. Matching is an unanchored substring test:
// an empty filter matches every name, so the walk runs to the end of the
// capture. That fragility is kept deliberately; callers own their filter
// strings.
func (b *Bus) callingFrame(filter string, skip int) symbolize.Frame {
	b.mu.RLock()
	resolver := b.resolver
	b.mu.RUnlock()

	cur := unwind.NewCursor(unwind.Capture(skip, unwind.CallerDepth))
	fr := symbolize.Frame{Function: symbolize.UnknownFunction}
	for {
		pc, ok := cur.Next()
		if !ok {
			return fr
		}
		fr = resolver.Resolve(pc)
		if !strings.Contains(fr.Function, filter) {
			return fr
		}
	}
}
