package symbolize

import (
	"context"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Symbolicator is an optional strategy that trades a subprocess call for an
// exact file:line descriptor. Absence or failure is a normal outcome; the
// resolver's base name/offset always remains as the fallback.
type Symbolicator interface {
	// Symbolicate maps an address inside module (loaded at base) to a
	// human-readable location. ok is false on any failure.
	Symbolicate(module string, base, addr uintptr) (desc string, ok bool)
}

// atosTimeout bounds one subprocess call so a wedged tool cannot stall a
// backtrace indefinitely.
const atosTimeout = 2 * time.Second

// AtosSymbolicator shells out to the macOS atos tool. On every other
// platform Symbolicate reports failure without spawning anything.
type AtosSymbolicator struct{}

func (AtosSymbolicator) Symbolicate(module string, base, addr uintptr) (string, bool) {
	if runtime.GOOS != "darwin" || module == "" {
		return "", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), atosTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "atos",
		"-o", module,
		"-l", "0x"+strconv.FormatUint(uint64(base), 16),
		"0x"+strconv.FormatUint(uint64(addr), 16),
	)
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	desc := strings.TrimSpace(string(out))
	if desc == "" {
		return "", false
	}
	return desc, true
}

// DefaultSymbolicator returns the platform symbolicator, or nil when the
// current platform has none.
func DefaultSymbolicator() Symbolicator {
	if runtime.GOOS == "darwin" {
		return AtosSymbolicator{}
	}
	return nil
}
