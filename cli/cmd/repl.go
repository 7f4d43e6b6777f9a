package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/tmplgen/cli/cmd/repl"
	"github.com/ardnew/tmplgen/gen"
	"github.com/ardnew/tmplgen/lang"
	"github.com/ardnew/tmplgen/log"
)

// Repl starts an interactive session resolving expressions and rendering
// template text against the values.
type Repl struct {
	Values `embed:""`
	Engine `embed:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	scope, err := r.Scope(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "repl"))
	}

	opts, err := r.options(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "repl"))
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, gen.New("", opts...), scope, cacheDir, log.Default())
}
