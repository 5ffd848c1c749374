package variables

import (
	"errors"
	"sort"
)

// ValidateOptions controls context validation.
type ValidateOptions struct {
	// Strict rejects context keys that have no registry entry.
	Strict bool
	// WarnUnknown downgrades unknown context keys to warnings instead
	// of errors. Meaningful only together with Strict.
	WarnUnknown bool
}

// Result is the outcome of a context validation. It is returned, not
// thrown; use Err to convert failures into a single error.
type Result struct {
	Valid    bool
	Errors   []FieldError
	Warnings []FieldError
}

// Err returns nil for a valid result, or one aggregated error listing
// every problem.
func (r *Result) Err() error {
	if r.Valid {
		return nil
	}
	return errors.New((&ResolveError{Errors: r.Errors}).Error())
}

// Validator checks candidate contexts against a registry.
type Validator struct {
	registry *Registry
}

// NewValidator creates a validator over the given registry.
func NewValidator(registry *Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate checks a context map against the registry: required
// variables must be present (or have defaults), and every supplied
// value must satisfy its definition's kind and custom validators.
func (v *Validator) Validate(ctx Context, opts ValidateOptions) *Result {
	result := &Result{Valid: true}

	for _, def := range v.registry.All() {
		value, present := ctx[def.Name]
		if !present {
			if def.IsRequired && !def.HasDefault {
				result.addError(def.Name, "required variable is missing")
			}
			continue
		}
		if err := def.CheckValue(value); err != nil {
			result.addError(def.Name, err.Error())
		}
	}

	if opts.Strict {
		for _, name := range sortedKeys(ctx) {
			if v.registry.Has(name) {
				continue
			}
			if opts.WarnUnknown {
				result.Warnings = append(result.Warnings, FieldError{Path: name, Message: "unknown variable"})
			} else {
				result.addError(name, "unknown variable")
			}
		}
	}

	return result
}

// ValidateOrError validates and returns one aggregated error when the
// context is invalid.
func (v *Validator) ValidateOrError(ctx Context, opts ValidateOptions) error {
	return v.Validate(ctx, opts).Err()
}

func (r *Result) addError(path, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, FieldError{Path: path, Message: message})
}

func sortedKeys(ctx Context) []string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateReferences scans every leaf string of a document for
// placeholder tokens and returns the referenced names that have no
// registry entry, sorted. This is reference checking, independent of
// context values.
func ValidateReferences(doc any, registry *Registry) []string {
	missing := make(map[string]bool)
	scanReferences(doc, func(name string) {
		if registry == nil || !registry.Has(name) {
			missing[name] = true
		}
	})

	out := make([]string, 0, len(missing))
	for name := range missing {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// scanReferences walks a decoded document and reports every placeholder
// name found in leaf strings.
func scanReferences(doc any, report func(name string)) {
	switch v := doc.(type) {
	case string:
		for _, name := range Extract(v) {
			report(name)
		}
	case map[string]any:
		for _, val := range v {
			scanReferences(val, report)
		}
	case []any:
		for _, val := range v {
			scanReferences(val, report)
		}
	}
}
