package lang

import (
	"maps"
	"slices"
	"strconv"
)

// Scope is an immutable mapping from identifiers to values.
// The zero Scope is empty.
type Scope struct {
	vars   map[string]Value
	parent *Scope
}

// NewScope returns a scope holding a copy of vars.
func NewScope(vars map[string]Value) Scope {
	return Scope{vars: maps.Clone(vars)}
}

// ScopeOf returns a scope holding vars converted with [ValueOf].
func ScopeOf(vars map[string]any) Scope {
	return Scope{vars: convertMap(vars)}
}

// ArgsScope returns a scope exposing positional arguments under the literal
// keys "arg0", "arg1", ... and "args[0]", "args[1]", ...
func ArgsScope(args ...any) Scope {
	vars := make(map[string]Value, 2*len(args))

	for i, a := range args {
		v := ValueOf(a)
		n := strconv.Itoa(i)
		vars["arg"+n] = v
		vars["args["+n+"]"] = v
	}

	return Scope{vars: vars}
}

// With returns a child scope in which name is bound to v.
// The receiver is not modified.
func (s Scope) With(name string, v Value) Scope {
	parent := s

	return Scope{vars: map[string]Value{name: v}, parent: &parent}
}

// Lookup returns the value bound to name.
func (s Scope) Lookup(name string) (Value, bool) {
	for c := &s; c != nil; c = c.parent {
		if v, ok := c.vars[name]; ok {
			return v, true
		}
	}

	return Value{}, false
}

// Keys returns the sorted names bound in s and its parents.
func (s Scope) Keys() []string {
	seen := make(map[string]struct{})

	for c := &s; c != nil; c = c.parent {
		for k := range c.vars {
			seen[k] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// Len returns the number of distinct names bound in s and its parents.
func (s Scope) Len() int { return len(s.Keys()) }
