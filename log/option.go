package log

// Option configures a [Logger].
//
// Options operate on a copy of the configuration and return the result, so
// applying an Option never affects a Logger that is already in use.
type Option func(config) config

func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}
