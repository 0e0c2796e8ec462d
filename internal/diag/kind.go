package diag

import "fmt"

// Kind classifies a diagnostic. The bus carries it end-to-end, unmodified,
// to the sink and to every handler; only those collaborators attach policy
// to it.
type Kind uint8

const (
	// KindError is a plain engine/program error.
	KindError Kind = iota
	// KindWarning is a non-fatal condition worth surfacing.
	KindWarning
	// KindScript marks errors raised from embedded script code.
	KindScript
	// KindShader marks errors raised from shader compilation.
	KindShader
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "ERROR"
	case KindWarning:
		return "WARNING"
	case KindScript:
		return "SCRIPT ERROR"
	case KindShader:
		return "SHADER ERROR"
	}
	return "UNKNOWN"
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "error", "ERROR":
		return KindError, nil
	case "warning", "WARNING":
		return KindWarning, nil
	case "script", "SCRIPT":
		return KindScript, nil
	case "shader", "SHADER":
		return KindShader, nil
	default:
		return KindError, fmt.Errorf("invalid diagnostic kind: %q (expected: error|warning|script|shader)", s)
	}
}
