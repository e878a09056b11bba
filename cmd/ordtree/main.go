// Package main is the entry point for the ordtree command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/ordtree/internal/config"
	"github.com/dshills/ordtree/internal/demo"
	"github.com/dshills/ordtree/internal/export"
	"github.com/dshills/ordtree/internal/logging"
	"github.com/dshills/ordtree/internal/render"
	"github.com/dshills/ordtree/internal/script"
	"github.com/dshills/ordtree/internal/source"
	"github.com/dshills/ordtree/internal/tree"
	"github.com/dshills/ordtree/internal/watch"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// options holds the parsed command line.
type options struct {
	ConfigPath string
	InputPath  string
	Seed       int64
	Size       int
	LogLevel   string
	Watch      bool

	Command string
	Args    []string

	// set records flags given explicitly, which override the config.
	set map[string]bool
}

// usageError marks errors caused by a bad command line.
type usageError struct {
	msg string
}

func (e usageError) Error() string {
	return e.msg
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, code, done := parseFlags(args, stdout, stderr)
	if done {
		return code
	}

	cfg, err := config.Load(config.OSFS{}, opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: loading config: %v\n", err)
		return exitError
	}
	if err := opts.apply(cfg); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	log := logging.NewLogger(logging.LoggerConfig{
		Level:  logging.ParseLogLevel(cfg.Logging.Level),
		Output: stderr,
		Prefix: "ordtree",
	})
	logging.SetLogger(log)

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := dispatch(ctx, opts, cfg, log, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var uerr usageError
		if errors.As(err, &uerr) {
			return exitUsage
		}
		return exitError
	}

	return exitOK
}

func parseFlags(args []string, stdout, stderr io.Writer) (opts options, code int, done bool) {
	var showVersion bool
	var showHelp bool

	fs := flag.NewFlagSet("ordtree", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to TOML configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to TOML configuration file (shorthand)")
	fs.StringVar(&opts.InputPath, "input", "", "Read starting values from a .yaml, .toml, .json or text file")
	fs.StringVar(&opts.InputPath, "i", "", "Read starting values from a file (shorthand)")
	fs.Int64Var(&opts.Seed, "seed", 0, "Random seed (0 picks one from the clock)")
	fs.IntVar(&opts.Size, "size", demo.DefaultSize, "Number of random starting values")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.Watch, "watch", false, "Re-run the script whenever the file changes")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "ordtree - explore an unbalanced binary search tree\n\n")
		fmt.Fprintf(stderr, "Usage: ordtree [options] [demo|view|export|script FILE]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  demo         Build, unbalance and rebalance a tree (default)\n")
		fmt.Fprintf(stderr, "  view         Browse the tree in the terminal\n")
		fmt.Fprintf(stderr, "  export       Print the tree as JSON\n")
		fmt.Fprintf(stderr, "  script FILE  Run a Lua script against the ordtree module\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  ordtree -seed 42                  Repeatable demo\n")
		fmt.Fprintf(stderr, "  ordtree -input values.yaml view   Browse a tree built from a file\n")
		fmt.Fprintf(stderr, "  ordtree -watch script shape.lua   Re-run a script on every save\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, exitOK, true
		}
		return opts, exitUsage, true
	}

	if showHelp {
		fs.Usage()
		return opts, exitOK, true
	}

	if showVersion {
		fmt.Fprintf(stdout, "ordtree %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, exitOK, true
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	if opts.set["log-level"] && !logging.ValidLogLevel(opts.LogLevel) {
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return opts, exitUsage, true
	}

	opts.Command = "demo"
	if rest := fs.Args(); len(rest) > 0 {
		opts.Command = rest[0]
		opts.Args = rest[1:]
	}

	return opts, exitOK, false
}

// apply copies explicitly given flags over cfg and revalidates it.
func (o options) apply(cfg *config.Config) error {
	if o.set["seed"] {
		cfg.Demo.Seed = o.Seed
	}
	if o.set["size"] {
		cfg.Demo.Size = o.Size
	}
	if o.set["log-level"] {
		cfg.Logging.Level = o.LogLevel
	}
	return cfg.Validate()
}

func dispatch(ctx context.Context, opts options, cfg *config.Config, log *logging.Logger, stdout io.Writer) error {
	if opts.Watch && opts.Command != "script" {
		return usageError{msg: "-watch only applies to the script command"}
	}

	switch opts.Command {
	case "demo":
		return runDemo(opts, cfg, log, stdout)
	case "view":
		t, err := startTree(opts, cfg)
		if err != nil {
			return err
		}
		return render.View(render.Lines(t.Root()), "ordtree: "+render.Summary(t))
	case "export":
		return runExport(opts, cfg, stdout)
	case "script":
		if len(opts.Args) != 1 {
			return usageError{msg: "script needs exactly one FILE argument"}
		}
		return runScript(ctx, opts.Args[0], opts.Watch, cfg, log, stdout)
	default:
		return usageError{msg: fmt.Sprintf("unknown command %q", opts.Command)}
	}
}

func runDemo(opts options, cfg *config.Config, log *logging.Logger, stdout io.Writer) error {
	values, err := inputValues(opts)
	if err != nil {
		return err
	}
	return demo.Run(stdout, demo.Options{
		Size:           cfg.Demo.Size,
		MaxValue:       cfg.Demo.MaxValue,
		UnbalanceCount: cfg.Demo.UnbalanceCount,
		Seed:           cfg.Demo.Seed,
		Values:         values,
	}, log.WithComponent("demo"))
}

func runExport(opts options, cfg *config.Config, stdout io.Writer) error {
	t, err := startTree(opts, cfg)
	if err != nil {
		return err
	}
	data, err := export.JSON(t)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(stdout, "%s\n", data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func runScript(ctx context.Context, path string, watchFile bool, cfg *config.Config, log *logging.Logger, stdout io.Writer) error {
	runner := script.NewRunner(script.RunnerConfig{
		InstructionLimit: cfg.Script.InstructionLimit,
		Timeout:          cfg.Script.Timeout,
		Output:           stdout,
	}, log)

	if !watchFile {
		return runner.RunFile(ctx, path)
	}
	return watch.File(ctx, path, cfg.Watch.Debounce, log, func(ctx context.Context) error {
		return runner.RunFile(ctx, path)
	})
}

// inputValues reads -input, or returns nil when it wasn't given.
func inputValues(opts options) ([]int, error) {
	if opts.InputPath == "" {
		return nil, nil
	}
	values, err := source.LoadInts(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("loading input: %w", err)
	}
	return values, nil
}

// startTree builds the tree named by -input, or a random one from the
// demo settings.
func startTree(opts options, cfg *config.Config) (*tree.Tree[int], error) {
	if opts.InputPath != "" {
		values, err := inputValues(opts)
		if err != nil {
			return nil, err
		}
		return tree.Build(values), nil
	}

	rng := demo.NewRand(cfg.Demo.Seed)
	return tree.Build(demo.RandomValues(rng, cfg.Demo.Size, cfg.Demo.MaxValue)), nil
}
