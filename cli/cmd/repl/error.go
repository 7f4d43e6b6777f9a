package repl

import "github.com/ardnew/tmplgen/lang"

var (
	// ErrOutOfBounds is returned for a history index with no entry.
	ErrOutOfBounds = lang.NewError("history index out of range")
	// ErrNoGenerator is returned by Run without a generator.
	ErrNoGenerator = lang.NewError("repl needs a generator")
)
