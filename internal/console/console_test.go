package console

import (
	"bytes"
	"strings"
	"testing"

	"faultline/internal/diag"
)

func newTestSink(width int) (*Sink, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	s := New(Options{Out: &out, ErrOut: &errOut, Color: "off", Width: width})
	return s, &out, &errOut
}

func TestErrorsGoToErrStream(t *testing.T) {
	s, out, errOut := newTestSink(-1)
	s.PrintError(diag.Diagnostic{Function: "f", File: "file.ext", Line: 42, Err: "boom", Kind: diag.KindError})
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if out.Len() != 0 {
		t.Fatalf("error leaked to stdout: %q", out.String())
	}
	got := errOut.String()
	for _, want := range []string{"ERROR: boom", "f (file.ext:42)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output %q missing %q", got, want)
		}
	}
}

func TestWarningsGoToOutStream(t *testing.T) {
	s, out, errOut := newTestSink(-1)
	s.PrintError(diag.Diagnostic{Function: "f", File: "file.ext", Line: 1, Err: "careful", Kind: diag.KindWarning})
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if errOut.Len() != 0 {
		t.Fatalf("warning leaked to stderr: %q", errOut.String())
	}
	if !strings.Contains(out.String(), "WARNING: careful") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestMessageRendersOnExtraLine(t *testing.T) {
	s, _, errOut := newTestSink(-1)
	s.PrintError(diag.Diagnostic{Function: "f", File: "file.ext", Line: 1, Err: "boom", Message: "the long story", Kind: diag.KindScript})
	_ = s.Flush()

	got := errOut.String()
	if !strings.Contains(got, "SCRIPT ERROR: boom") || !strings.Contains(got, "the long story") {
		t.Fatalf("output = %q", got)
	}
}

func TestBufferedUntilFlush(t *testing.T) {
	s, _, errOut := newTestSink(-1)
	s.PrintError(diag.Diagnostic{Function: "f", File: "file.ext", Line: 1, Err: "boom", Kind: diag.KindError})
	if errOut.Len() != 0 {
		t.Fatalf("output written before flush")
	}
	_ = s.Flush()
	if errOut.Len() == 0 {
		t.Fatalf("output lost after flush")
	}
}

func TestTruncatesToWidth(t *testing.T) {
	s, _, errOut := newTestSink(40)
	long := strings.Repeat("x", 200)
	s.PrintError(diag.Diagnostic{Function: "f", File: "file.ext", Line: 1, Err: long, Kind: diag.KindError})
	_ = s.Flush()

	if strings.Contains(errOut.String(), strings.Repeat("x", 40)) {
		t.Fatalf("long error not truncated: %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "…") {
		t.Fatalf("truncation marker missing: %q", errOut.String())
	}
}

func TestSinkSatisfiesDiagSink(t *testing.T) {
	var _ diag.Sink = New(Options{Color: "off", Width: -1})
}
