package diag

// Diagnostic is one reported event. It is ephemeral: constructed by a report
// entry point, handed to the sink and the handlers, then discarded.
type Diagnostic struct {
	Function string
	File     string
	Line     int
	Err      string // short error text
	Message  string // optional longer explanation
	// EditorNotify asks an attached editor frontend to surface the
	// diagnostic prominently.
	EditorNotify bool
	Kind         Kind
}

// Details returns the message when present, else the short error text.
// This is the string the fallback path prints.
func (d Diagnostic) Details() string {
	if d.Message != "" {
		return d.Message
	}
	return d.Err
}

// Sink renders diagnostics. It is optional at any point in the process
// lifecycle: the bus falls back to stderr while no sink is attached.
type Sink interface {
	// PrintError renders one diagnostic. Must be safe for concurrent use
	// and must not panic.
	PrintError(d Diagnostic)

	// Flush forces buffered output to be written immediately.
	Flush() error
}
