package lang

import (
	"iter"
	"maps"
	"slices"
	"sync"
)

// Func is a unary function callable from expressions.
type Func func(arg Value) (Value, error)

// Funcs looks up functions by name.
type Funcs interface {
	Lookup(name string) (Func, bool)
}

// Registry is a concurrency-safe set of named functions.
// The zero Registry is empty and ready to use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register binds fn to name, replacing any earlier binding.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcs == nil {
		r.funcs = make(map[string]Func)
	}

	r.funcs[name] = fn
}

// Lookup returns the function bound to name.
func (r *Registry) Lookup(name string) (Func, bool) {
	if r == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[name]

	return fn, ok
}

// Names returns an iterator over the registered names in sorted order.
func (r *Registry) Names() iter.Seq[string] {
	r.mu.RLock()
	names := slices.Sorted(maps.Keys(r.funcs))
	r.mu.RUnlock()

	return slices.Values(names)
}

// Len returns the number of registered functions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.funcs)
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &Registry{funcs: maps.Clone(r.funcs)}
}

type binding struct {
	parent Funcs
	name   string
	fn     Func
}

// Bind returns a [Funcs] that resolves name to fn and every other name through
// parent. The parent is not modified.
func Bind(parent Funcs, name string, fn Func) Funcs {
	return binding{parent: parent, name: name, fn: fn}
}

func (b binding) Lookup(name string) (Func, bool) {
	if name == b.name {
		return b.fn, true
	}

	if b.parent == nil {
		return nil, false
	}

	return b.parent.Lookup(name)
}
