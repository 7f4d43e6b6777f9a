package gen

import "github.com/ardnew/tmplgen/log"

// Option configures a [Generator].
type Option func(*Generator)

// WithLogger sets the logger that receives trace events while rendering.
func WithLogger(logger log.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithMaxDepth limits how deeply templates may include other templates.
// Zero, the default, is unlimited.
func WithMaxDepth(n int) Option {
	return func(g *Generator) { g.maxDepth = max(n, 0) }
}

// WithSearchPath sets the directories searched for included templates that
// are not found next to the including template.
func WithSearchPath(dirs ...string) Option {
	return func(g *Generator) { g.loader = NewLoader(dirs...) }
}

// WithLoader sets the loader used for included templates. Generators sharing
// a loader share its file cache.
func WithLoader(l *Loader) Option {
	return func(g *Generator) {
		if l != nil {
			g.loader = l
		}
	}
}

// WithConfig applies the settings of cfg.
func WithConfig(cfg Config) Option {
	return func(g *Generator) {
		WithMaxDepth(cfg.MaxDepth)(g)
		WithSearchPath(cfg.SearchPath()...)(g)
	}
}

func applyOptions(g *Generator, opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
}
