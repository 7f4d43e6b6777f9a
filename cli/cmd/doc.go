// Package cmd implements the tmplgen subcommands.
//
// Every command that evaluates templates or expressions builds its scope from
// [Values]: YAML files given with --values, assignments given with --set and
// positional arguments given with --arg.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
