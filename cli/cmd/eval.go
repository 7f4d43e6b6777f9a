package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/tmplgen/gen"
	"github.com/ardnew/tmplgen/lang"
)

// Eval resolves a single expression against the values.
type Eval struct {
	Values `embed:""`
	Engine `embed:""`

	Expr   string `arg:""                    help:"Expression to resolve"                   name:"expr"`
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})" short:"F"`

	stdout io.Writer
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	scope, err := e.Scope(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "eval"))
	}

	opts, err := e.options(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "eval"))
	}

	v, err := gen.New("", opts...).Resolve(ctx, scope, e.Expr)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"), slog.String("expression", e.Expr))
	}

	out, err := format(ctx, v, e.Format)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "eval"))
	}

	w := e.stdout
	if w == nil {
		w = os.Stdout
	}

	_, err = fmt.Fprintln(w, out)

	return err
}

// format encodes v as text, JSON or YAML.
func format(ctx context.Context, v lang.Value, as string) (string, error) {
	switch as {
	case "json":
		b, err := json.MarshalIndent(v.Any(), "", "  ")
		if err != nil {
			return "", ErrJSONMarshal.Wrap(err)
		}

		return string(b), nil

	case "yaml":
		b, err := yaml.MarshalContext(ctx, v.Any(), yaml.Indent(defaultConfigIndent))
		if err != nil {
			return "", ErrYAMLMarshal.Wrap(err)
		}

		return string(bytes.TrimRight(b, "\n")), nil

	default:
		return v.String(), nil
	}
}
