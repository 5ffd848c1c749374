package variables

import (
	"sort"
)

// Context is the flat map of concrete values supplied at resolution
// time. It is ephemeral and never persisted with a document.
type Context map[string]any

// Clone returns a shallow copy of the context.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Registry is a named collection of variable definitions with optional
// grouping.
type Registry struct {
	defs   map[string]Definition
	groups map[string][]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:   make(map[string]Definition),
		groups: make(map[string][]string),
	}
}

// Register adds or replaces a definition under its name.
func (r *Registry) Register(def Definition) *Registry {
	r.defs[def.Name] = def
	return r
}

// RegisterMany adds or replaces several definitions.
func (r *Registry) RegisterMany(defs ...Definition) *Registry {
	for _, def := range defs {
		r.defs[def.Name] = def
	}
	return r
}

// Unregister removes a definition and any group references to it.
func (r *Registry) Unregister(name string) {
	delete(r.defs, name)
	for group, names := range r.groups {
		filtered := names[:0]
		for _, n := range names {
			if n != name {
				filtered = append(filtered, n)
			}
		}
		r.groups[group] = filtered
	}
}

// Get returns the definition for name.
func (r *Registry) Get(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Has reports whether a definition exists for name.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.defs)
}

// All returns every definition, sorted by name.
func (r *Registry) All() []Definition {
	out := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetRequired returns every required definition, sorted by name.
func (r *Registry) GetRequired() []Definition {
	var out []Definition
	for _, def := range r.All() {
		if def.IsRequired {
			out = append(out, def)
		}
	}
	return out
}

// GetOptional returns every optional definition, sorted by name.
func (r *Registry) GetOptional() []Definition {
	var out []Definition
	for _, def := range r.All() {
		if !def.IsRequired {
			out = append(out, def)
		}
	}
	return out
}

// Group assigns registered variable names to a named group. Unknown
// names are ignored.
func (r *Registry) Group(group string, names ...string) *Registry {
	for _, name := range names {
		if !r.Has(name) {
			continue
		}
		r.groups[group] = append(r.groups[group], name)
	}
	return r
}

// GetGroup returns the definitions assigned to a group, in assignment
// order.
func (r *Registry) GetGroup(group string) []Definition {
	names := r.groups[group]
	out := make([]Definition, 0, len(names))
	for _, name := range names {
		if def, ok := r.defs[name]; ok {
			out = append(out, def)
		}
	}
	return out
}

// Groups returns the group names, sorted.
func (r *Registry) Groups() []string {
	out := make([]string, 0, len(r.groups))
	for name := range r.groups {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ApplyDefaults returns a copy of ctx with every registered-but-absent
// key filled from its definition's default.
func (r *Registry) ApplyDefaults(ctx Context) Context {
	out := make(Context, len(ctx)+len(r.defs))
	for k, v := range ctx {
		out[k] = v
	}
	for name, def := range r.defs {
		if _, present := out[name]; !present && def.HasDefault {
			out[name] = def.DefaultVal
		}
	}
	return out
}

// Schema derives a JSON-Schema-shaped description of every registered
// definition, suitable for export or batch validation by external
// tooling.
func (r *Registry) Schema() map[string]any {
	properties := make(map[string]any, len(r.defs))
	var required []string

	for _, def := range r.All() {
		prop := map[string]any{}
		switch def.Kind {
		case KindString:
			prop["type"] = "string"
		case KindNumber:
			prop["type"] = "number"
		case KindBoolean:
			prop["type"] = "boolean"
		case KindArray:
			prop["type"] = "array"
		case KindObject:
			prop["type"] = "object"
		}
		if def.Description != "" {
			prop["description"] = def.Description
		}
		if def.HasDefault {
			prop["default"] = def.DefaultVal
		}
		properties[def.Name] = prop
		if def.IsRequired {
			required = append(required, def.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Merge unions another registry into this one. On a name conflict the
// other registry's definition wins; group assignments are appended.
func (r *Registry) Merge(other *Registry) *Registry {
	if other == nil {
		return r
	}
	for name, def := range other.defs {
		r.defs[name] = def
	}
	for group, names := range other.groups {
		r.groups[group] = append(r.groups[group], names...)
	}
	return r
}

// Clone returns an independent copy of the registry: definitions and
// group assignments.
func (r *Registry) Clone() *Registry {
	out := NewRegistry()
	for name, def := range r.defs {
		out.defs[name] = def
	}
	for group, names := range r.groups {
		out.groups[group] = copyNames(names)
	}
	return out
}

func copyNames(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}
