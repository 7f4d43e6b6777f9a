package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tmplgen/lang"
)

// ErrConfigFile is returned when the configuration file is not valid YAML.
var ErrConfigFile = lang.NewError("invalid configuration file")

// resolve is a [kong.ConfigurationLoader] that parses a flat YAML mapping of
// flag names to values.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// Keys are flag names without the leading dashes. Hyphens and underscores
// are interchangeable, so both of these set --log-level:
//
//	log-level: debug
//	log_level: debug
//
// Numbers are handed to kong as text so that it can parse them into the
// flag's own type. Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrConfigFile.Wrap(err)
	}

	var raw map[string]any

	err = yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, ErrConfigFile.Wrap(err)
	}

	cfg := make(config, len(raw))
	for key, value := range raw {
		cfg[normalizeKey(key)] = flagValue(value)
	}

	return cfg, nil
}

// config implements [kong.Resolver] for flat YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[normalizeKey(flag.Name)]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil //nolint:nilnil
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), "_", "-")
}

// flagValue converts a decoded YAML value to a form kong can decode.
func flagValue(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		s := make([]any, len(v))
		for i, e := range v {
			s[i] = flagValue(e)
		}

		return s
	default:
		return v
	}
}
