package variables

import (
	"sort"
	"strings"
)

// FieldError locates one validation problem inside a context or
// document.
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// ResolveError aggregates everything that prevented a resolution:
// every validation failure and every name that stayed unresolved.
// It is returned once per resolve call so callers can present a
// complete remediation list in one pass.
type ResolveError struct {
	Errors     []FieldError
	Unresolved []string
}

func (e *ResolveError) Error() string {
	var lines []string
	for _, fe := range e.Errors {
		lines = append(lines, fe.String())
	}
	if len(e.Unresolved) > 0 {
		names := make([]string, len(e.Unresolved))
		copy(names, e.Unresolved)
		sort.Strings(names)
		lines = append(lines, "unresolved variables: "+strings.Join(names, ", "))
	}
	if len(lines) == 0 {
		return "resolution failed"
	}
	return "resolution failed:\n" + strings.Join(lines, "\n")
}

// CycleError reports a circular variable reference chain, e.g.
// a -> b -> a.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "circular variable reference: " + strings.Join(e.Chain, " -> ")
}
