//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tmplgen/log"
	"github.com/ardnew/tmplgen/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Profile the run (${enum})" placeholder:"MODE" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory"                       type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(appDirs().cache, profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start starts the profiler selected by --pprof-mode. The returned func
// writes the profile.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	p := profile.Profiler{Mode: f.Mode, Dir: f.Dir, Quiet: true}
	if p.Mode == "" {
		return func() {}
	}

	log.DebugContext(ctx, "pprof start", slog.String("mode", p.Mode), slog.String("dir", p.Dir))

	s := p.Start()

	return func() {
		s.Stop()
		log.DebugContext(ctx, "pprof stop", slog.String("mode", p.Mode), slog.String("dir", p.Dir))
	}
}
