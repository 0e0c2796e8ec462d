package diag

// defaultBus backs the package-level entry points. It exists for the
// lifetime of the process; tests that need isolation construct their own
// Bus instead.
var defaultBus = New()

// Default returns the process-wide bus.
func Default() *Bus { return defaultBus }

// Register adds h to the process-wide bus.
func Register(h *Handler) { defaultBus.Register(h) }

// Unregister removes h from the process-wide bus.
func Unregister(h *Handler) { defaultBus.Unregister(h) }

// SetSink attaches (or, with nil, detaches) the process-wide sink.
func SetSink(s Sink) { defaultBus.SetSink(s) }

// Report raises a diagnostic on the process-wide bus.
func Report(function, file string, line int, errText, message string, editorNotify bool, kind Kind) {
	defaultBus.Report(function, file, line, errText, message, editorNotify, kind)
}

// ReportErr raises a diagnostic without a long message.
func ReportErr(function, file string, line int, errText string, editorNotify bool, kind Kind) {
	defaultBus.Report(function, file, line, errText, "", editorNotify, kind)
}

// ReportBytes raises a diagnostic from raw byte strings.
func ReportBytes(function, file string, line int, errText, message []byte, editorNotify bool, kind Kind) {
	defaultBus.ReportBytes(function, file, line, errText, message, editorNotify, kind)
}

// ReportIndexOutOfBounds raises the fixed out-of-bounds diagnostic.
func ReportIndexOutOfBounds(function, file string, line int, index, size int64, indexExpr, sizeExpr, message string, editorNotify, fatal bool) {
	defaultBus.ReportIndexOutOfBounds(function, file, line, index, size, indexExpr, sizeExpr, message, editorNotify, fatal)
}

// ReportBacktrace walks the caller's stack and reports every frame.
func ReportBacktrace(errText string, editorNotify bool, kind Kind) {
	defaultBus.reportBacktrace(errText, editorNotify, kind, 2)
}

// ReportErrorWithBacktrace reports errText against the first calling frame
// outside the machinery matched by filter.
func ReportErrorWithBacktrace(filter, errText string, editorNotify bool, kind Kind) {
	fr := defaultBus.callingFrame(filter, 2)
	defaultBus.Report(fr.Function, fr.Module, fr.Line, "", fr.Descriptor+errText, editorNotify, kind)
}

// FlushOutput flushes buffered diagnostic output on the process-wide bus.
func FlushOutput() { defaultBus.FlushOutput() }
