// Package profile provides optional runtime profiling for tmplgen.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// pprof build tag:
//
//	go build -tags pprof .
//
// Without the tag [Modes] is empty and [Profiler.Start] always returns a
// no-op [Stopper], so callers never need their own build constraints.
//
// # Modes
//
//   - allocs:    memory allocations since program start
//   - block:     blocking on synchronization primitives
//   - clock:     wall-clock samples (fgprof)
//   - cpu:       CPU samples
//   - goroutine: stacks of all goroutines
//   - heap:      live heap allocations
//   - mem:       heap allocations at the default sampling rate
//   - mutex:     mutex contention
//   - thread:    thread creation
//   - trace:     execution trace
//
// # Usage
//
//	stop := profile.Profiler{Mode: "cpu", Dir: "./profiles"}.Start()
//	defer stop.Stop()
//
// The command line exposes the same settings as --pprof-mode and
// --pprof-dir. A profile is written to Dir as <mode>.pprof when it stops,
// except trace, which is written as trace.out:
//
//	tmplgen --pprof-mode cpu --pprof-dir ./profiles render site.txt
//	go tool pprof ./profiles/cpu.pprof
package profile
