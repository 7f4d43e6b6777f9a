package cmd

import (
	"context"
	"slices"

	"github.com/alecthomas/kong"
)

type (
	kongContextKey struct{}
	searchPathKey  struct{}
)

// WithContext returns a copy of ctx carrying the parsed command line.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongContextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(kongContextKey{}).(*kong.Context)

	return ktx
}

// WithSearchPath returns a copy of ctx carrying the directories given on the
// command line to search for included templates.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, slices.Clone(dirs))
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}
