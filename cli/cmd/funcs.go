package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/tmplgen/gen"
	"github.com/ardnew/tmplgen/lang"
	"github.com/ardnew/tmplgen/log"
)

// Funcs lists the built-in functions.
type Funcs struct {
	Names  []string `arg:""                                      help:"Functions to show (default: all)" optional:""`
	Sample *string  `help:"Show each function applied to TEXT" placeholder:"TEXT"                        short:"s"`

	stdout io.Writer
}

// Run executes the funcs command.
func (f *Funcs) Run(ctx context.Context) error {
	g := gen.New("")

	names := f.Names
	if len(names) == 0 {
		names = slices.Collect(g.Names())
	}

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	nameStyle := lipgloss.NewStyle().Bold(true).Width(width)

	var sb strings.Builder

	for _, name := range names {
		fn, ok := g.Lookup(name)
		if !ok {
			return ErrUnknownFunc.
				With(slog.String("command", "funcs"), slog.String("function", name))
		}

		sb.WriteString(nameStyle.Render(name))

		if f.Sample != nil {
			out, err := fn(lang.String(*f.Sample))
			if err != nil {
				return lang.WrapError(err).With(slog.String("function", name))
			}

			fmt.Fprintf(&sb, "  %s", out)
		}

		sb.WriteByte('\n')
	}

	log.DebugContext(ctx, "listed functions", slog.Int("count", len(names)))

	w := f.stdout
	if w == nil {
		w = os.Stdout
	}

	_, err := io.WriteString(w, sb.String())

	return err
}
