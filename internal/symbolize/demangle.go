package symbolize

import "strings"

// Demangle turns a raw runtime symbol into a shorter source-level form:
// the leading package directory path is dropped and linker escapes are
// decoded, so "faultline/internal/diag.(*Bus).Report" becomes
// "diag.(*Bus).Report". Anything that does not look like a qualified Go
// symbol is returned untouched; Demangle never fails.
func Demangle(symbol string) string {
	if symbol == "" {
		return UnknownFunction
	}
	name := symbol
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 && idx+1 < len(name) {
		name = name[idx+1:]
	}
	// The linker encodes '.' in package names as U+00B7 and '/' as U+2215.
	name = strings.ReplaceAll(name, "·", ".")
	name = strings.ReplaceAll(name, "∕", "/")
	if name == "" {
		return symbol
	}
	return name
}
