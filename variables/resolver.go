package variables

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/wudi/proxyconf/internal/logging"
)

// DefaultMaxDepth bounds variable-references-variable recursion.
const DefaultMaxDepth = 10

// Options controls a resolve pass.
type Options struct {
	// Strict fails the pass when any placeholder stays unresolved.
	// Lenient (the default) leaves the literal token in place.
	Strict bool
	// MaxDepth bounds recursive resolution of variables that reference
	// other variables. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Preview reports which placeholder names in a document the given
// context could satisfy, without mutating anything.
type Preview struct {
	Found   []string
	Missing []string
	Total   int
}

// Resolver substitutes placeholder tokens in a decoded document
// against a context map, consulting a registry for transforms.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a resolver. The registry may be nil when no
// transforms are needed.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// resolveState carries per-pass accumulation.
type resolveState struct {
	ctx        Context
	registry   *Registry
	maxDepth   int
	unresolved map[string]bool
	errors     []FieldError
}

// Resolve walks the document and substitutes every placeholder token.
// Maps and slices are copied, never mutated in place. A cycle in
// variable references fails the pass regardless of mode; in strict
// mode any unresolved name does too, aggregated into one ResolveError.
func (r *Resolver) Resolve(doc any, ctx Context, opts Options) (any, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	state := &resolveState{
		ctx:        ctx,
		registry:   r.registry,
		maxDepth:   maxDepth,
		unresolved: make(map[string]bool),
	}

	out, err := walk(doc, "", state)
	if err != nil {
		return nil, err
	}

	if len(state.errors) > 0 || (opts.Strict && len(state.unresolved) > 0) {
		resErr := &ResolveError{Errors: state.errors}
		if opts.Strict {
			resErr.Unresolved = setToSorted(state.unresolved)
		}
		return nil, resErr
	}

	if len(state.unresolved) > 0 {
		logging.Debug("resolution left placeholders in place",
			zap.Strings("unresolved", setToSorted(state.unresolved)))
	}
	return out, nil
}

func walk(doc any, path string, state *resolveState) (any, error) {
	switch v := doc.(type) {
	case string:
		return resolveString(v, path, state)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			resolved, err := walk(val, childPath(path, k), state)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			resolved, err := walk(val, fmt.Sprintf("%s[%d]", path, i), state)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return doc, nil
	}
}

// resolveString substitutes the tokens of one leaf string.
//
// A string that is exactly one bare token keeps the context value's
// type for arrays, objects, and nil. Scalar values are substituted as
// text in every position, including the bare-token one: a numeric 100
// supplied for `average: ~##rateLimit##~` yields the string "100".
func resolveString(s, path string, state *resolveState) (any, error) {
	tmpl := parseCached(s)
	if !tmpl.HasRefs {
		return s, nil
	}

	if tmpl.IsBareRef() {
		name := tmpl.Parts[0].Value
		value, ok := lookup(name, state)
		if !ok {
			state.unresolved[name] = true
			return s, nil
		}
		switch v := value.(type) {
		case string:
			return resolveValueString(name, v, path, []string{name}, state)
		case []any, []string, map[string]any, nil:
			return v, nil
		default:
			return stringify(value), nil
		}
	}

	var firstErr error
	rendered := tmpl.Render(func(name string) string {
		value, ok := lookup(name, state)
		if !ok {
			state.unresolved[name] = true
			return Token(name)
		}
		if str, isStr := value.(string); isStr {
			resolved, err := resolveValueString(name, str, path, []string{name}, state)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return Token(name)
			}
			return stringify(resolved)
		}
		return stringify(value)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return rendered, nil
}

// resolveValueString resolves tokens inside a context value itself,
// supporting variables that reference other variables. The chain
// records the lookup path for cycle reporting.
func resolveValueString(name, value, path string, chain []string, state *resolveState) (any, error) {
	tmpl := parseCached(value)
	if !tmpl.HasRefs {
		return value, nil
	}

	if len(chain) > state.maxDepth {
		state.errors = append(state.errors, FieldError{
			Path:    path,
			Message: fmt.Sprintf("variable %q exceeds maximum resolution depth %d", name, state.maxDepth),
		})
		return value, nil
	}

	var firstErr error
	rendered := tmpl.Render(func(ref string) string {
		for _, seen := range chain {
			if seen == ref {
				if firstErr == nil {
					firstErr = &CycleError{Chain: append(copyNames(chain), ref)}
				}
				return Token(ref)
			}
		}
		refValue, ok := lookup(ref, state)
		if !ok {
			state.unresolved[ref] = true
			return Token(ref)
		}
		if str, isStr := refValue.(string); isStr {
			resolved, err := resolveValueString(ref, str, path, append(copyNames(chain), ref), state)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return Token(ref)
			}
			return stringify(resolved)
		}
		return stringify(refValue)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return rendered, nil
}

// lookup fetches a context value, running the registry's transform
// chain when the name is registered.
func lookup(name string, state *resolveState) (any, bool) {
	value, ok := state.ctx[name]
	if !ok {
		return nil, false
	}
	if state.registry != nil {
		if def, registered := state.registry.Get(name); registered {
			value = def.ApplyTransforms(value)
		}
	}
	return value, true
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%v", v)
	}
}

// PreviewDocument performs a dry pass: it reports which referenced
// names the context (or a registry default) can satisfy and which it
// cannot. It never errors and leaves the document untouched.
func (r *Resolver) PreviewDocument(doc any, ctx Context) *Preview {
	found := make(map[string]bool)
	missing := make(map[string]bool)

	scanReferences(doc, func(name string) {
		if _, ok := ctx[name]; ok {
			found[name] = true
			return
		}
		if r.registry != nil {
			if def, registered := r.registry.Get(name); registered && def.HasDefault {
				found[name] = true
				return
			}
		}
		missing[name] = true
	})

	return &Preview{
		Found:   setToSorted(found),
		Missing: setToSorted(missing),
		Total:   len(found) + len(missing),
	}
}

func setToSorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
