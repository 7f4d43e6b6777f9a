package gen

import (
	"github.com/caarlos0/env/v10"

	"github.com/ardnew/tmplgen/lang"
)

// ErrConfig reports an environment variable that could not be parsed.
var ErrConfig = lang.NewError("invalid environment configuration")

// Config holds generator settings read from the environment.
type Config struct {
	// Path lists directories searched for included templates.
	Path string `env:"TMPLGEN_PATH"`
	// MaxDepth limits template inclusion depth. Zero is unlimited.
	MaxDepth int `env:"TMPLGEN_MAX_DEPTH" envDefault:"0"`
}

// LoadConfig reads a [Config] from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, ErrConfig.Wrap(err)
	}

	return cfg, nil
}

// SearchPath returns the existing directories of Path, after prefix.
func (c Config) SearchPath(prefix ...string) []string {
	return SearchPath(prefix, c.Path)
}
