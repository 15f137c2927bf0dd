package variables

import (
	"sort"
	"strings"
)

const marker = "$"

// Value is a literal string or a named reference to an install variable.
type Value struct {
	text string
	ref  bool
}

// Literal returns a Value that resolves to s unchanged.
func Literal(s string) Value {
	return Value{text: s}
}

// Reference returns a Value that resolves to the variable called name.
func Reference(name string) Value {
	return Value{text: name, ref: true}
}

// Parse converts the raw declaration form into a Value.
// "$NAME" is a reference, "$$text" is the literal "$text", anything else is
// a literal.
func Parse(raw string) Value {
	switch {
	case strings.HasPrefix(raw, marker+marker):
		return Literal(raw[len(marker):])
	case strings.HasPrefix(raw, marker) && len(raw) > len(marker):
		return Reference(raw[len(marker):])
	default:
		return Literal(raw)
	}
}

// IsReference reports whether v names a variable.
func (v Value) IsReference() bool { return v.ref }

// IsZero reports whether v is the empty literal.
func (v Value) IsZero() bool { return !v.ref && v.text == "" }

// Name returns the referenced variable name, or "" for literals.
func (v Value) Name() string {
	if !v.ref {
		return ""
	}
	return v.text
}

// String returns the declaration form of v, the inverse of Parse.
func (v Value) String() string {
	if v.ref {
		return marker + v.text
	}
	if strings.HasPrefix(v.text, marker) && len(v.text) > len(marker) {
		return marker + v.text
	}
	return v.text
}

// Resolve returns the value v stands for. A reference missing from vars
// resolves to "" and ok is false.
func Resolve(v Value, vars map[string]string) (value string, ok bool) {
	if !v.ref {
		return v.text, true
	}
	value, ok = vars[v.text]
	return value, ok
}

// Resolver resolves many values against one variable set and remembers
// which references could not be satisfied.
type Resolver struct {
	vars    map[string]string
	missing map[string]struct{}
}

// NewResolver creates a Resolver over vars. vars may be nil.
func NewResolver(vars map[string]string) *Resolver {
	return &Resolver{vars: vars, missing: make(map[string]struct{})}
}

// Resolve resolves v, recording the name of an unsatisfied reference.
func (r *Resolver) Resolve(v Value) string {
	value, ok := Resolve(v, r.vars)
	if !ok {
		r.missing[v.text] = struct{}{}
	}
	return value
}

// Missing returns the sorted names of references that could not be resolved.
func (r *Resolver) Missing() []string {
	names := make([]string, 0, len(r.missing))
	for name := range r.missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
