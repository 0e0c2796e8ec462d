package symbolize

import (
	"os"
	"runtime"
	"sync"
)

// UnknownFunction is the placeholder used when no symbol owns an address.
const UnknownFunction = "???"

// Frame is the best-effort identity of one resolved stack frame.
type Frame struct {
	// Function is the cleaned-up symbol name, the raw symbol when cleanup
	// does not apply, or UnknownFunction.
	Function string
	// Module is the source file owning the frame when the runtime knows it,
	// otherwise the path of the running executable.
	Module string
	// Line is the source line when available. Without line data it is the
	// address offset from the owning function's entry point: a line-like
	// number, not a guaranteed source line.
	Line int
	// Descriptor is an optional richer location produced by an external
	// symbolication tool, already suffixed with " - " for prefixing onto
	// message text. Empty in the common case.
	Descriptor string
}

// Resolver maps an instruction address to a Frame. Implementations must be
// safe for concurrent use and must not panic on unresolvable addresses.
type Resolver interface {
	Resolve(pc uintptr) Frame
}

// RuntimeResolver resolves addresses through the Go runtime's symbol tables.
// Tool, when non-nil, is consulted for a richer per-frame descriptor; its
// failures are silent and never affect the base resolution.
type RuntimeResolver struct {
	Tool Symbolicator
}

var executablePath = sync.OnceValue(func() string {
	path, err := os.Executable()
	if err != nil {
		return UnknownFunction
	}
	return path
})

// Resolve never fails: unresolvable addresses degrade to placeholder fields.
func (r *RuntimeResolver) Resolve(pc uintptr) Frame {
	fr := Frame{Function: UnknownFunction, Module: executablePath()}

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return fr
	}

	frames := runtime.CallersFrames([]uintptr{pc})
	detail, _ := frames.Next()

	name := detail.Function
	if name == "" {
		name = fn.Name()
	}
	if name != "" {
		fr.Function = Demangle(name)
	}

	if detail.File != "" {
		fr.Module = detail.File
		fr.Line = detail.Line
	} else if entry := fn.Entry(); pc >= entry {
		fr.Line = int(pc - entry)
	}

	if r != nil && r.Tool != nil {
		if desc, ok := r.Tool.Symbolicate(executablePath(), fn.Entry(), pc); ok && desc != "" {
			fr.Descriptor = desc + " - "
		}
	}
	return fr
}
