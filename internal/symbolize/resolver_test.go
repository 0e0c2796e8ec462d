package symbolize

import (
	"runtime"
	"strings"
	"testing"
)

func TestResolveOwnFrame(t *testing.T) {
	pc, _, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	var r RuntimeResolver
	fr := r.Resolve(pc)
	if !strings.Contains(fr.Function, "TestResolveOwnFrame") {
		t.Fatalf("function = %q, want test name", fr.Function)
	}
	if !strings.HasSuffix(fr.Module, "resolver_test.go") {
		t.Fatalf("module = %q, want this file", fr.Module)
	}
	if fr.Line <= 0 {
		t.Fatalf("line = %d, want a line-like positive number", fr.Line)
	}
	if fr.Descriptor != "" {
		t.Fatalf("descriptor should be empty without a tool, got %q", fr.Descriptor)
	}
}

func TestResolveUnknownAddress(t *testing.T) {
	var r RuntimeResolver
	fr := r.Resolve(1)
	if fr.Function != UnknownFunction {
		t.Fatalf("function = %q, want placeholder", fr.Function)
	}
}

type fixedTool struct {
	desc string
	ok   bool
}

func (f fixedTool) Symbolicate(string, uintptr, uintptr) (string, bool) {
	return f.desc, f.ok
}

func TestResolveToolDescriptor(t *testing.T) {
	pc, _, _, _ := runtime.Caller(0)
	r := RuntimeResolver{Tool: fixedTool{desc: "file.c:12", ok: true}}
	fr := r.Resolve(pc)
	if fr.Descriptor != "file.c:12 - " {
		t.Fatalf("descriptor = %q", fr.Descriptor)
	}
}

func TestResolveToolFailureKeepsBase(t *testing.T) {
	pc, _, _, _ := runtime.Caller(0)
	r := RuntimeResolver{Tool: fixedTool{}}
	fr := r.Resolve(pc)
	if fr.Descriptor != "" {
		t.Fatalf("failed tool must leave descriptor empty, got %q", fr.Descriptor)
	}
	if fr.Function == UnknownFunction {
		t.Fatalf("base resolution lost after tool failure")
	}
}
