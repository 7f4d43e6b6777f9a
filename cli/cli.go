package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tmplgen/cli/cmd"
	"github.com/ardnew/tmplgen/pkg"
)

// CLI is the top-level command-line interface for tmplgen.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Path []string `help:"Directory searched for nested templates (repeatable)" name:"path" placeholder:"DIR" short:"I" type:"existingdir"`

	Render cmd.Render `cmd:"" default:"withargs" help:"Render a template file"`
	Eval   cmd.Eval   `cmd:""                    help:"Resolve a single expression"`
	Funcs  cmd.Funcs  `cmd:""                    help:"List built-in functions"`
	Repl   cmd.Repl   `cmd:""                    help:"Evaluate expressions interactively"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the tmplgen CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var cli CLI

	// Apply logger flags before parsing so that parse errors are already
	// reported in the requested format.
	cli.Log.scan(args)

	parser, err := newParser(ctx, &cli, exit, configPath(baseConfig))
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSearchPath(ctx, cli.Path)

	defer cli.Log.start(ctx)()
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// newParser returns the parser for cli. Flags not given on the command line
// are read from the YAML file at confPath, if it exists.
func newParser(
	ctx context.Context,
	cli *CLI,
	exit func(code int),
	confPath string,
) (*kong.Kong, error) {
	vars := kong.Vars{
		cmd.ConfigIdentifier: confPath,
		cmd.CacheIdentifier:  appDirs().cache,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	return kong.New(cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(resolve, confPath),
		vars,
	)
}
