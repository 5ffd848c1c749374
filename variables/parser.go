// Package variables implements the deferred-variable engine for dynamic
// configuration templates: typed variable definitions, a registry with
// groups and defaults, context validation, and a resolver that
// substitutes ~##name##~ placeholder tokens in a document against a
// flat context map supplied at deploy time.
package variables

import (
	"regexp"
	"strings"
)

// refPattern matches a ~##name##~ placeholder token.
var refPattern = regexp.MustCompile(`~##([A-Za-z_][A-Za-z0-9_]*)##~`)

// Extract returns the distinct placeholder names referenced by a string,
// in order of first appearance.
func Extract(s string) []string {
	matches := refPattern.FindAllStringSubmatch(s, -1)
	if matches == nil {
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, match := range matches {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}
	return names
}

// HasPlaceholders reports whether the string contains any placeholder
// token.
func HasPlaceholders(s string) bool {
	return refPattern.MatchString(s)
}

// Template is a parsed string value: an alternating sequence of literal
// text and placeholder references.
type Template struct {
	Raw     string
	Parts   []Part
	HasRefs bool
}

// Part is either literal text or a placeholder reference.
type Part struct {
	IsRef bool
	Value string // literal text, or the placeholder name without delimiters
}

// ParseTemplate splits a string value into literal and reference parts.
func ParseTemplate(s string) *Template {
	t := &Template{Raw: s}

	indices := refPattern.FindAllStringSubmatchIndex(s, -1)
	if len(indices) == 0 {
		t.Parts = []Part{{Value: s}}
		return t
	}

	t.HasRefs = true
	lastEnd := 0
	for _, loc := range indices {
		if loc[0] > lastEnd {
			t.Parts = append(t.Parts, Part{Value: s[lastEnd:loc[0]]})
		}
		t.Parts = append(t.Parts, Part{IsRef: true, Value: s[loc[2]:loc[3]]})
		lastEnd = loc[1]
	}
	if lastEnd < len(s) {
		t.Parts = append(t.Parts, Part{Value: s[lastEnd:]})
	}
	return t
}

// IsBareRef reports whether the whole template is exactly one
// placeholder reference with no surrounding literal text.
func (t *Template) IsBareRef() bool {
	return len(t.Parts) == 1 && t.Parts[0].IsRef
}

// Render concatenates the parts, substituting every reference through
// getValue.
func (t *Template) Render(getValue func(name string) string) string {
	if !t.HasRefs {
		return t.Raw
	}

	var b strings.Builder
	b.Grow(len(t.Raw))
	for _, part := range t.Parts {
		if part.IsRef {
			b.WriteString(getValue(part.Value))
		} else {
			b.WriteString(part.Value)
		}
	}
	return b.String()
}

// Token renders a placeholder token for the given name.
func Token(name string) string {
	return "~##" + name + "##~"
}
