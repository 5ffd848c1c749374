package variables

import (
	"fmt"
)

// Kind is the value kind a variable accepts.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindCustom  Kind = "custom"
)

// ValidatorFunc checks a candidate value. A non-nil error rejects it.
type ValidatorFunc func(value any) error

// TransformFunc rewrites a context value before substitution.
type TransformFunc func(value any) any

// Definition describes one variable: its kind, requiredness, default,
// and any validators and transforms. Definitions have value semantics;
// the fluent modifiers return an updated copy, so a registered
// definition is never mutated in place.
type Definition struct {
	Name        string
	Kind        Kind
	IsRequired  bool
	DefaultVal  any
	HasDefault  bool
	Description string

	validators []ValidatorFunc
	transforms []TransformFunc
}

// String defines a string variable.
func String(name string) Definition {
	return Definition{Name: name, Kind: KindString}
}

// Number defines a numeric variable.
func Number(name string) Definition {
	return Definition{Name: name, Kind: KindNumber}
}

// Boolean defines a boolean variable.
func Boolean(name string) Definition {
	return Definition{Name: name, Kind: KindBoolean}
}

// Array defines an array variable.
func Array(name string) Definition {
	return Definition{Name: name, Kind: KindArray}
}

// Object defines an object variable.
func Object(name string) Definition {
	return Definition{Name: name, Kind: KindObject}
}

// Custom defines a variable with no kind constraint.
func Custom(name string) Definition {
	return Definition{Name: name, Kind: KindCustom}
}

// Required marks the variable as mandatory at compile time.
func (d Definition) Required() Definition {
	d.IsRequired = true
	return d
}

// Optional marks the variable as optional.
func (d Definition) Optional() Definition {
	d.IsRequired = false
	return d
}

// Default sets the value used when the context omits the variable.
func (d Definition) Default(value any) Definition {
	d.DefaultVal = value
	d.HasDefault = true
	return d
}

// Describe attaches a human-readable description.
func (d Definition) Describe(text string) Definition {
	d.Description = text
	return d
}

// Validate appends a custom validator. Validators run in registration
// order after the kind check.
func (d Definition) Validate(fn ValidatorFunc) Definition {
	d.validators = appendCopy(d.validators, fn)
	return d
}

// Transform appends a value transform. Transforms run in registration
// order on the context value before substitution.
func (d Definition) Transform(fn TransformFunc) Definition {
	d.transforms = appendCopy(d.transforms, fn)
	return d
}

// appendCopy appends without sharing backing arrays between the copies
// produced by the fluent modifiers.
func appendCopy[T any](src []T, v T) []T {
	out := make([]T, len(src), len(src)+1)
	copy(out, src)
	return append(out, v)
}

// CheckValue validates a candidate value against the definition's kind
// and custom validators.
func (d Definition) CheckValue(value any) error {
	if err := checkKind(d.Kind, value); err != nil {
		return err
	}
	for _, fn := range d.validators {
		if err := fn(value); err != nil {
			return err
		}
	}
	return nil
}

// ApplyTransforms runs the transform chain over a context value.
func (d Definition) ApplyTransforms(value any) any {
	for _, fn := range d.transforms {
		value = fn(value)
	}
	return value
}

func checkKind(kind Kind, value any) error {
	switch kind {
	case KindString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected a string, got %T", value)
		}
	case KindNumber:
		if !isNumeric(value) {
			return fmt.Errorf("expected a number, got %T", value)
		}
	case KindBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected a boolean, got %T", value)
		}
	case KindArray:
		switch value.(type) {
		case []any, []string:
		default:
			return fmt.Errorf("expected an array, got %T", value)
		}
	case KindObject:
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("expected an object, got %T", value)
		}
	}
	return nil
}

func isNumeric(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// numericValue converts any numeric value to float64 for comparisons.
func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
