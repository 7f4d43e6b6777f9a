package lang

import (
	"context"

	"github.com/ardnew/tmplgen/log"
)

// Option configures a [Resolver].
type Option func(*Resolver)

// WithLogger sets the logger that receives trace events for each resolved
// expression. The zero [log.Logger] discards them.
func WithLogger(logger log.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// WithContext sets the context passed to the logger.
func WithContext(ctx context.Context) Option {
	return func(r *Resolver) {
		if ctx != nil {
			r.ctx = ctx
		}
	}
}

func applyOptions(r *Resolver, opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
}
