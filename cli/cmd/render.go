package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/ardnew/tmplgen/gen"
	"github.com/ardnew/tmplgen/lang"
	"github.com/ardnew/tmplgen/log"
)

// outputMode is the permission mode of files written with --out.
const outputMode os.FileMode = 0o644

// Engine holds the flags that configure template evaluation.
type Engine struct {
	MaxDepth int `default:"-1" help:"Maximum template inclusion depth, 0 is unlimited (default: $TMPLGEN_MAX_DEPTH)" name:"max-depth"`
}

// options returns the generator options for the environment configuration,
// the search path given on the command line and the receiver's flags.
// Generators built with the same options share one template cache.
func (e *Engine) options(ctx context.Context) ([]gen.Option, error) {
	cfg, err := gen.LoadConfig()
	if err != nil {
		return nil, err
	}

	loader := gen.NewLoader(cfg.SearchPath(searchPathFrom(ctx)...)...)

	opts := []gen.Option{
		gen.WithConfig(cfg),
		gen.WithLoader(loader),
		gen.WithLogger(log.Default()),
	}

	if e.MaxDepth >= 0 {
		opts = append(opts, gen.WithMaxDepth(e.MaxDepth))
	}

	log.DebugContext(ctx, "engine configured",
		slog.Any("search", loader.Search()),
		slog.Int("max_depth", e.MaxDepth),
	)

	return opts, nil
}

// Render renders a template file.
type Render struct {
	Values `embed:""`
	Engine `embed:""`

	Template string `arg:""                                                     help:"Template file to render" type:"existingfile"`
	Out      string `help:"Write output to file instead of stdout"            short:"o"                      type:"path"`
	Watch    bool   `help:"Render again whenever the template or an include changes" short:"w"`

	stdout io.Writer
	mu     sync.Mutex
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	scope, err := r.Scope(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "render"))
	}

	opts, err := r.options(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "render"))
	}

	files, err := r.render(ctx, scope, opts)
	if err != nil && !r.Watch {
		return lang.WrapError(err).
			With(slog.String("command", "render"), slog.String("template", r.Template))
	}

	if err != nil {
		log.ErrorContext(ctx, "render failed", slog.Any("error", err))
	}

	if !r.Watch {
		return nil
	}

	return r.watch(ctx, scope, opts, files)
}

// render loads, renders and writes the template once. It returns the files
// the render read, which is at least the template itself.
func (r *Render) render(ctx context.Context, scope lang.Scope, opts []gen.Option) ([]string, error) {
	g, err := gen.Load(r.Template, opts...)
	if err != nil {
		return []string{r.Template}, err
	}

	out, err := g.Render(ctx, scope)
	if err != nil {
		return g.Files(), err
	}

	if err := r.write(out); err != nil {
		return g.Files(), err
	}

	log.DebugContext(ctx, "rendered template",
		slog.String("template", r.Template),
		slog.Int("files", len(g.Files())),
		slog.Int("length", len(out)),
	)

	return g.Files(), nil
}

func (r *Render) watch(ctx context.Context, scope lang.Scope, opts []gen.Option, files []string) error {
	w, err := gen.NewWatcher(log.Default(), gen.DefaultDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(files...); err != nil {
		return err
	}

	log.InfoContext(ctx, "watching template", slog.Any("files", files))

	return w.Watch(ctx, func(name string) error {
		log.InfoContext(ctx, "template changed", slog.String("path", name))

		files, err := r.render(ctx, scope, opts)
		if addErr := w.Add(files...); addErr != nil && err == nil {
			err = addErr
		}

		return err
	})
}

func (r *Render) write(out string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Out != "" {
		if err := os.WriteFile(r.Out, []byte(out), outputMode); err != nil {
			return ErrWriteOutput.Wrap(err).With(slog.String("file", r.Out))
		}

		return nil
	}

	w := r.stdout
	if w == nil {
		w = os.Stdout
	}

	if _, err := io.WriteString(w, out); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
