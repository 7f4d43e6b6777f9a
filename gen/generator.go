package gen

import (
	"cmp"
	"context"
	"iter"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/tmplgen/lang"
	"github.com/ardnew/tmplgen/log"
)

// Generator renders a template against a scope of values.
//
// A Generator may render concurrently from multiple goroutines. Functions
// must not be registered while a render is in progress.
type Generator struct {
	text     string
	path     string
	funcs    *lang.Registry
	loader   *Loader
	logger   log.Logger
	maxDepth int
}

// state is the position of one render within a tree of included templates.
type state struct {
	text  string
	path  string
	depth int
}

// New returns a generator for the template text. Included templates are
// resolved relative to the working directory and the search path.
func New(text string, opts ...Option) *Generator {
	g := &Generator{
		text:   text,
		funcs:  Builtins(),
		loader: NewLoader(),
	}

	applyOptions(g, opts...)

	return g
}

// Load returns a generator for the template file at path. Templates it
// includes are resolved relative to the file's directory first.
func Load(path string, opts ...Option) (*Generator, error) {
	g := New("", opts...)

	text, err := g.loader.Read(path)
	if err != nil {
		return nil, err
	}

	g.text, g.path = text, path

	return g, nil
}

// WithText returns a generator for text that shares the receiver's
// functions, loader and settings. Templates it includes are resolved relative
// to the receiver's file.
func (g *Generator) WithText(text string) *Generator {
	c := *g
	c.text = text

	return &c
}

// Register binds fn to name, replacing a built-in or earlier function of the
// same name.
func (g *Generator) Register(name string, fn lang.Func) {
	g.funcs.Register(name, fn)
}

// Names returns the names of the registered functions in sorted order.
// The template function is bound during rendering and is not included.
func (g *Generator) Names() iter.Seq[string] { return g.funcs.Names() }

// Lookup returns the registered function name.
func (g *Generator) Lookup(name string) (lang.Func, bool) { return g.funcs.Lookup(name) }

// Path returns the template file path, or "" if the template was not loaded
// from a file.
func (g *Generator) Path() string { return g.path }

// Text returns the template text.
func (g *Generator) Text() string { return g.text }

// Files returns the template file and every file it has included so far.
func (g *Generator) Files() []string {
	files := g.loader.Files()
	if g.path != "" && !slices.Contains(files, g.path) {
		files = append([]string{g.path}, files...)
	}

	return files
}

// Render renders the template against scope.
func (g *Generator) Render(ctx context.Context, scope lang.Scope) (string, error) {
	return g.render(ctx, state{text: g.text, path: g.path}, scope)
}

// RenderMap renders the template against the named values of m.
func (g *Generator) RenderMap(ctx context.Context, m map[string]any) (string, error) {
	return g.Render(ctx, lang.ScopeOf(m))
}

// RenderArgs renders the template against positional arguments, bound to
// both argN and args[N].
func (g *Generator) RenderArgs(ctx context.Context, args ...any) (string, error) {
	return g.Render(ctx, lang.ArgsScope(args...))
}

// Resolve evaluates a single expression against scope with the generator's
// functions, including template.
func (g *Generator) Resolve(ctx context.Context, scope lang.Scope, expr string) (lang.Value, error) {
	return g.resolver(ctx, state{path: g.path}, scope).Resolve(expr)
}

func (g *Generator) resolver(ctx context.Context, st state, scope lang.Scope) *lang.Resolver {
	funcs := lang.Bind(g.funcs, "template", g.include(ctx, st, scope))

	return lang.NewResolver(scope, funcs, lang.WithLogger(g.logger), lang.WithContext(ctx))
}

func (g *Generator) render(ctx context.Context, st state, scope lang.Scope) (string, error) {
	p := parseCached(ctx, g.logger, st.text)
	if len(p.regions) == 0 {
		return st.text, nil
	}

	r := g.resolver(ctx, st, scope)
	out := make([]string, len(p.regions))

	for i, reg := range p.regions {
		if err := ctx.Err(); err != nil {
			return "", context.Cause(ctx)
		}

		g.logger.TraceContext(
			ctx,
			"render region",
			slog.String("kind", reg.kind.String()),
			slog.String("text", reg.text),
			slog.Int("start", reg.start),
			slog.Int("depth", st.depth),
		)

		var err error

		switch reg.kind {
		case regionIf:
			out[i], err = reg.cond.Eval(r)
		case regionFor:
			out[i], err = g.loop(ctx, st, scope, r, reg)
		case regionSubst:
			out[i], err = r.ResolveText(reg.expr)
		}

		if err != nil {
			return "", err
		}
	}

	order := make([]int, len(p.regions))
	for i := range order {
		order[i] = i
	}

	slices.SortFunc(order, func(a, b int) int {
		return cmp.Compare(p.regions[a].start, p.regions[b].start)
	})

	var (
		sb   strings.Builder
		last int
	)

	for _, i := range order {
		sb.WriteString(st.text[last:p.regions[i].start])
		sb.WriteString(out[i])
		last = p.regions[i].end
	}

	sb.WriteString(st.text[last:])

	return sb.String(), nil
}

func (g *Generator) loop(
	ctx context.Context,
	st state,
	scope lang.Scope,
	r *lang.Resolver,
	reg region,
) (string, error) {
	f, err := ParseFor(reg.text, reg.spec, reg.body, r)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	for i := range f.Indices() {
		if err := ctx.Err(); err != nil {
			return "", context.Cause(ctx)
		}

		text, err := g.resolver(ctx, st, f.Scope(scope, i)).ResolveText(f.Body)
		if err != nil {
			return "", err
		}

		sb.WriteString(text)
	}

	return sb.String(), nil
}

// include returns the template function for a render at st with scope.
func (g *Generator) include(ctx context.Context, st state, scope lang.Scope) lang.Func {
	return func(arg lang.Value) (lang.Value, error) {
		name, ok := arg.AsString()
		if !ok {
			return lang.Value{}, lang.ErrInvalidTemplatePath.
				Errorf("Invalid template path: %s", arg).
				With(slog.String("kind", arg.Kind().String()))
		}

		if g.maxDepth > 0 && st.depth >= g.maxDepth {
			return lang.Value{}, lang.ErrMaxDepthExceeded.
				Errorf("Maximum template depth %d exceeded", g.maxDepth).
				With(slog.String("path", name))
		}

		var base string
		if st.path != "" {
			base = filepath.Dir(st.path)
		}

		path, err := g.loader.Find(base, name)
		if err != nil {
			return lang.Value{}, err
		}

		text, err := g.loader.Read(path)
		if err != nil {
			return lang.Value{}, err
		}

		g.logger.TraceContext(
			ctx,
			"load template",
			slog.String("path", path),
			slog.Int("depth", st.depth+1),
		)

		out, err := g.render(ctx, state{text: text, path: path, depth: st.depth + 1}, scope)
		if err != nil {
			return lang.Value{}, err
		}

		return lang.String(out), nil
	}
}
