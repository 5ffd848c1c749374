package dynamic

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Number is an integer configuration value that may instead be authored
// as a string, typically a placeholder token that is only resolved at
// deploy time. It serializes back in exactly the form it holds: a value
// that arrived as a string stays a string, even when the string is
// numeric.
type Number struct {
	Int int64
	Raw string // non-empty when the value was authored as a string
}

// NumberOf returns a Number holding a concrete integer.
func NumberOf(v int64) *Number {
	return &Number{Int: v}
}

// NumberString returns a Number holding a raw string form.
func NumberString(s string) *Number {
	return &Number{Raw: s}
}

// IsString reports whether the value is in its string form.
func (n *Number) IsString() bool {
	return n.Raw != ""
}

// Value returns the integer value, parsing the string form when
// possible.
func (n *Number) Value() (int64, error) {
	if n.Raw == "" {
		return n.Int, nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(n.Raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a numeric value: %q", n.Raw)
	}
	return v, nil
}

func (n *Number) String() string {
	if n.Raw != "" {
		return n.Raw
	}
	return strconv.FormatInt(n.Int, 10)
}

// MarshalJSON emits a JSON string for the string form, a JSON number
// otherwise.
func (n *Number) MarshalJSON() ([]byte, error) {
	if n.Raw != "" {
		return json.Marshal(n.Raw)
	}
	return json.Marshal(n.Int)
}

// UnmarshalJSON accepts a JSON number or a JSON string. Strings are
// kept verbatim in the string form.
func (n *Number) UnmarshalJSON(data []byte) error {
	var i int64
	if err := json.Unmarshal(data, &i); err == nil {
		n.Int = i
		n.Raw = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected number or string: %s", data)
	}
	n.Int = 0
	n.Raw = s
	return nil
}

// MarshalYAML emits the string form verbatim, the integer otherwise.
func (n *Number) MarshalYAML() (interface{}, error) {
	if n.Raw != "" {
		return n.Raw, nil
	}
	return n.Int, nil
}

// UnmarshalYAML accepts a scalar number or string.
func (n *Number) UnmarshalYAML(data []byte) error {
	var i int64
	if err := yaml.Unmarshal(data, &i); err == nil {
		n.Int = i
		n.Raw = ""
		return nil
	}
	var s string
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected number or string: %s", data)
	}
	n.Int = 0
	n.Raw = s
	return nil
}
