package cmd

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/ardnew/tmplgen/lang"
	"github.com/ardnew/tmplgen/log"
)

// Values are the flags shared by every command that builds a scope.
//
// Files are merged in order, later files replacing the scalars and lists of
// earlier ones and merging their mappings. Each assignment is then evaluated
// as an expr-lang expression against the values merged so far; an
// assignment that does not evaluate is kept as its literal text. Positional
// arguments are bound last.
type Values struct {
	Files []string `help:"YAML file of values or '-' for stdin (repeatable)"              name:"values" placeholder:"FILE"     short:"f" type:"existingfile"`
	Set   []string `help:"Set key (or a.b.key) to the value of an expression (repeatable)" name:"set"    placeholder:"KEY=EXPR" short:"D" sep:"none"`
	Arg   []string `help:"Positional argument bound to argN and args[N] (repeatable)"      name:"arg"    placeholder:"VALUE"    short:"a" sep:"none"`
}

// Scope returns the scope described by v.
func (v *Values) Scope(ctx context.Context) (lang.Scope, error) {
	m, err := v.Map(ctx)
	if err != nil {
		return lang.Scope{}, err
	}

	return lang.ScopeOf(m), nil
}

// Map returns the native values described by v.
func (v *Values) Map(ctx context.Context) (map[string]any, error) {
	m := map[string]any{}

	srcs := openSourceFiles(v.Files)
	defer srcs.Close()

	for name, r := range srcs.All() {
		doc, err := decodeValues(r)
		if err != nil {
			return nil, ErrReadValues.Wrap(err).With(slog.String("file", name))
		}

		merge(m, doc)
	}

	for _, set := range v.Set {
		key, src, ok := strings.Cut(set, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return nil, ErrInvalidSet.With(slog.String("set", set))
		}

		setPath(m, strings.Split(key, "."), evalSet(ctx, src, m))
	}

	for i, a := range v.Arg {
		n := strconv.Itoa(i)
		m["arg"+n] = a
		m["args["+n+"]"] = a
	}

	log.DebugContext(ctx, "values loaded",
		slog.Int("files", len(v.Files)),
		slog.Int("set", len(v.Set)),
		slog.Int("args", len(v.Arg)),
		slog.Int("keys", len(m)),
	)

	return m, nil
}

// decodeValues reads one YAML document whose top level is a mapping.
func decodeValues(r io.Reader) (map[string]any, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, err
	}

	var doc any

	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, err
	}

	switch doc := doc.(type) {
	case nil:
		return nil, nil //nolint:nilnil
	case map[string]any:
		return doc, nil
	default:
		return nil, ErrInvalidValue
	}
}

// evalSet evaluates src against env, falling back to the literal text.
func evalSet(ctx context.Context, src string, env map[string]any) any {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}

	env = maps.Clone(env)

	program, err := expr.Compile(src, expr.Env(env))
	if err == nil {
		var out any

		out, err = expr.Run(program, env)
		if err == nil {
			return out
		}
	}

	log.TraceContext(ctx, "assignment is literal",
		slog.String("source", src),
		slog.Any("reason", err),
	)

	return src
}

// merge copies src into dst. Mappings present in both are merged
// recursively; any other value in src replaces the one in dst.
func merge(dst, src map[string]any) {
	for k, sv := range src {
		sm, ok := sv.(map[string]any)
		if dm, isMap := dst[k].(map[string]any); ok && isMap {
			merge(dm, sm)

			continue
		}

		dst[k] = sv
	}
}

// setPath binds v at the nested key path in m, creating or replacing
// intermediate mappings as needed.
func setPath(m map[string]any, path []string, v any) {
	for _, k := range path[:len(path)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[k] = next
		}

		m = next
	}

	m[path[len(path)-1]] = v
}
