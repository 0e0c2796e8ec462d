package diag

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

// memSink records every diagnostic it is asked to print.
type memSink struct {
	mu      sync.Mutex
	printed []Diagnostic
	flushes int
}

func (s *memSink) PrintError(d Diagnostic) {
	s.mu.Lock()
	s.printed = append(s.printed, d)
	s.mu.Unlock()
}

func (s *memSink) Flush() error {
	s.mu.Lock()
	s.flushes++
	s.mu.Unlock()
	return nil
}

func TestReportDelegatesToSink(t *testing.T) {
	b := New()
	var buf bytes.Buffer
	b.SetFallbackWriter(&buf)
	sink := &memSink{}
	b.SetSink(sink)

	b.Report("f", "file.ext", 42, "boom", "details", true, KindScript)

	if len(sink.printed) != 1 {
		t.Fatalf("sink invoked %d times, want exactly 1", len(sink.printed))
	}
	d := sink.printed[0]
	if d.Function != "f" || d.File != "file.ext" || d.Line != 42 ||
		d.Err != "boom" || d.Message != "details" || !d.EditorNotify || d.Kind != KindScript {
		t.Fatalf("sink saw wrong diagnostic: %+v", d)
	}
	if buf.Len() != 0 {
		t.Fatalf("fallback fired while a sink was attached: %q", buf.String())
	}
}

func TestFallbackLine(t *testing.T) {
	b := New()
	var buf bytes.Buffer
	b.SetFallbackWriter(&buf)

	b.Report("f", "file.ext", 42, "boom", "", false, KindError)

	out := buf.String()
	for _, want := range []string{"boom", "f", "file.ext", "42"} {
		if !strings.Contains(out, want) {
			t.Fatalf("fallback line %q missing %q", out, want)
		}
	}
	if out != "ERROR: boom\n   at: f (file.ext:42)\n" {
		t.Fatalf("fallback line = %q", out)
	}
}

func TestFallbackPrefersMessage(t *testing.T) {
	b := New()
	var buf bytes.Buffer
	b.SetFallbackWriter(&buf)

	b.Report("f", "file.ext", 7, "short", "the long story", false, KindError)
	if !strings.Contains(buf.String(), "the long story") || strings.Contains(buf.String(), "short") {
		t.Fatalf("fallback should print the message when present: %q", buf.String())
	}
}

func TestSinkDetachRestoresFallback(t *testing.T) {
	b := New()
	var buf bytes.Buffer
	b.SetFallbackWriter(&buf)
	sink := &memSink{}
	b.SetSink(sink)
	b.SetSink(nil)

	b.Report("f", "file.ext", 1, "boom", "", false, KindError)
	if len(sink.printed) != 0 {
		t.Fatalf("detached sink still invoked")
	}
	if buf.Len() == 0 {
		t.Fatalf("fallback silent after sink detach")
	}
}

func TestPanickingSinkIsAbsorbed(t *testing.T) {
	b := New()
	b.SetFallbackWriter(discard{})
	b.SetSink(panicSink{})

	var mu sync.Mutex
	var got []string
	b.Register(collectHandler(&mu, &got, "h"))

	b.Report("f", "file.ext", 1, "boom", "", false, KindError)
	if len(got) != 1 {
		t.Fatalf("handlers skipped after sink panic: %v", got)
	}
}

type panicSink struct{}

func (panicSink) PrintError(Diagnostic) { panic("sink bug") }
func (panicSink) Flush() error          { return nil }

func TestIndexOutOfBoundsText(t *testing.T) {
	b := New()
	b.SetFallbackWriter(discard{})
	sink := &memSink{}
	b.SetSink(sink)

	b.ReportIndexOutOfBounds("f", "file.ext", 10, 5, 3, "i", "n", "", false, false)
	b.ReportIndexOutOfBounds("f", "file.ext", 11, 5, 3, "i", "n", "", false, true)

	if len(sink.printed) != 2 {
		t.Fatalf("sink invoked %d times, want 2", len(sink.printed))
	}
	if got := sink.printed[0].Err; got != "Index i = 5 is out of bounds (n = 3)." {
		t.Fatalf("non-fatal text = %q", got)
	}
	if got := sink.printed[1].Err; got != "FATAL: Index i = 5 is out of bounds (n = 3)." {
		t.Fatalf("fatal text = %q", got)
	}
	if sink.printed[0].Kind != KindError {
		t.Fatalf("index errors must carry KindError, got %v", sink.printed[0].Kind)
	}
}

func TestReportBytesNormalizes(t *testing.T) {
	b := New()
	b.SetFallbackWriter(discard{})
	sink := &memSink{}
	b.SetSink(sink)

	// "e" + combining acute accent must come out precomposed; a stray
	// invalid byte must degrade, not fail.
	b.ReportBytes("f", "file.ext", 1, []byte("caf\x65́"), []byte{0xff}, false, KindError)

	d := sink.printed[0]
	if d.Err != "café" {
		t.Fatalf("err text = %q, want NFC-composed form", d.Err)
	}
	if d.Message == "" || strings.ContainsRune(d.Message, 0xff) {
		t.Fatalf("invalid bytes must degrade to replacement text, got %q", d.Message)
	}
}

func TestReportErrOmitsMessage(t *testing.T) {
	b := New()
	b.SetFallbackWriter(discard{})
	sink := &memSink{}
	b.SetSink(sink)

	b.ReportErr("f", "file.ext", 1, "boom", false, KindWarning)
	if d := sink.printed[0]; d.Message != "" || d.Err != "boom" || d.Kind != KindWarning {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
}

func TestFlushOutputReachesSink(t *testing.T) {
	b := New()
	sink := &memSink{}
	b.SetSink(sink)
	b.FlushOutput()
	if sink.flushes != 1 {
		t.Fatalf("sink flushed %d times, want 1", sink.flushes)
	}
	// Without a sink it must still be a safe no-op.
	b.SetSink(nil)
	b.FlushOutput()
}

func TestKindStrings(t *testing.T) {
	cases := map[Kind]string{
		KindError:   "ERROR",
		KindWarning: "WARNING",
		KindScript:  "SCRIPT ERROR",
		KindShader:  "SHADER ERROR",
		Kind(99):    "UNKNOWN",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Fatalf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
	if k, err := ParseKind("warning"); err != nil || k != KindWarning {
		t.Fatalf("ParseKind(warning) = %v, %v", k, err)
	}
	if _, err := ParseKind("nope"); err == nil {
		t.Fatalf("ParseKind accepted garbage")
	}
}
