package builder

import (
	"fmt"
)

// ParseError is returned by Load when the input parses as neither YAML
// nor JSON. Both underlying failures are kept so callers can diagnose
// either format.
type ParseError struct {
	YAMLErr error
	JSONErr error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("input is neither valid YAML nor valid JSON: yaml: %v; json: %v", e.YAMLErr, e.JSONErr)
}
