// Package cli contains the command line interface for tmplgen.
//
// # Usage
//
// Running tmplgen with a template path renders it, since render is the
// default command:
//
//	tmplgen page.txt --set title='"Home"' --values site.yaml
//	tmplgen render -I partials --arg World greeting.txt
//	tmplgen eval 'upperCase(name)' --set name=ada
//	tmplgen funcs --sample 'hello worldWide'
//	tmplgen repl --values site.yaml
//
// # Configuration Loader
//
// Flag defaults are read from config.yaml in the user configuration directory
// by [resolve], a Kong configuration loader for flat YAML mappings. The init
// command writes a file containing every flag with its current value.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o tmplgen .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/tmplgen/pprof)
package cli
