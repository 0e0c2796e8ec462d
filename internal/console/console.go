// Package console provides the default diag.Sink: colorized, width-aware
// rendering of diagnostics onto stdout/stderr. Warnings go to stdout,
// everything else to stderr, so shells can split the streams the usual way.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"faultline/internal/diag"
)

// Options configures a Sink. Zero value = stdout/stderr, auto color,
// terminal-derived width.
type Options struct {
	// Out receives warnings; ErrOut receives everything else. Nil selects
	// os.Stdout / os.Stderr.
	Out    io.Writer
	ErrOut io.Writer
	// Color is auto, on or off.
	Color string
	// Width truncates rendered lines; 0 = detect from the terminal, -1 =
	// never truncate.
	Width int
}

// Sink renders diagnostics. All methods are safe for concurrent use; output
// is buffered, so diag.FlushOutput (which calls Flush) matters before an
// abort.
type Sink struct {
	mu     sync.Mutex
	out    *bufio.Writer
	errOut *bufio.Writer
	width  int

	label map[diag.Kind]*color.Color
	loc   *color.Color
}

// New builds a sink from opts.
func New(opts Options) *Sink {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}

	useColor := false
	switch opts.Color {
	case "on":
		useColor = true
	case "off":
	default: // auto
		useColor = isTerminal(errOut)
	}

	width := opts.Width
	if width == 0 {
		width = detectWidth(errOut)
	}

	s := &Sink{
		out:    bufio.NewWriter(out),
		errOut: bufio.NewWriter(errOut),
		width:  width,
		loc:    newColor(useColor, color.Faint),
		label: map[diag.Kind]*color.Color{
			diag.KindError:   newColor(useColor, color.FgRed, color.Bold),
			diag.KindWarning: newColor(useColor, color.FgYellow, color.Bold),
			diag.KindScript:  newColor(useColor, color.FgMagenta, color.Bold),
			diag.KindShader:  newColor(useColor, color.FgCyan, color.Bold),
		},
	}
	return s
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func detectWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return -1
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return -1
	}
	return width
}

// PrintError renders one diagnostic:
//
//	ERROR: short error text
//	   at: function (file:line)
//	       longer message, when present
func (s *Sink) PrintError(d diag.Diagnostic) {
	w := s.errOut
	if d.Kind == diag.KindWarning {
		w = s.out
	}
	label := s.label[d.Kind]
	if label == nil {
		label = s.label[diag.KindError]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintf(w, "%s: %s\n", label.Sprint(d.Kind.String()), s.fit(d.Err))
	fmt.Fprintf(w, "%s %s (%s:%d)\n", s.loc.Sprint("   at:"), d.Function, d.File, d.Line)
	if d.Message != "" {
		fmt.Fprintf(w, "       %s\n", s.fit(d.Message))
	}
}

// fit truncates text to the terminal width, accounting for wide runes.
func (s *Sink) fit(text string) string {
	if s.width <= 0 {
		return text
	}
	limit := s.width - 8
	if limit < 10 {
		limit = 10
	}
	return runewidth.Truncate(text, limit, "…")
}

// Flush writes both buffers out.
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	outErr := s.out.Flush()
	if err := s.errOut.Flush(); err != nil {
		return err
	}
	return outErr
}
