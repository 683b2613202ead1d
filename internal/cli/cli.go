// Package cli implements the plotscript command-line interface.
//
// # Commands
//
//   - compile: Print the gnuplot script for a plot description
//   - render: Run the script through gnuplot and write the output file
//   - serve: Expose compile and render over HTTP
//   - cache: Manage the rendered-artifact cache
//   - version: Print build and engine versions
//
// Descriptions are TOML, YAML or JSON files; see package config. All
// commands accept --verbose (-v) for debug logging and --quiet (-q) to
// show warnings only. The logger travels on the command context.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/plotscript/pkg/buildinfo"
	"github.com/matzehuels/plotscript/pkg/cache"
	"github.com/matzehuels/plotscript/pkg/config"
	"github.com/matzehuels/plotscript/pkg/engine"
	"github.com/matzehuels/plotscript/pkg/errors"
	"github.com/matzehuels/plotscript/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "plotscript"

	// envEngine overrides the engine command line (default "gnuplot").
	envEngine = "PLOTSCRIPT_GNUPLOT"

	// envRedis points serve at a shared Redis cache.
	envRedis = "PLOTSCRIPT_REDIS_URL"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose bool
	quiet   bool
}

// New creates a CLI logging to w at level. The --verbose and --quiet flags
// adjust the level before any command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Plotscript compiles declarative plot descriptions into gnuplot scripts",
		Long: `Plotscript reads a plot description (TOML, YAML or JSON) declaring
graphs, axes and series, compiles it into a gnuplot script and optionally
runs gnuplot to render it. Several graphs share one page as a multiplot
arranged on a grid.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose || c.quiet {
				c.SetLogLevel(levelFor(c.verbose, c.quiet))
			}
			cmd.SetContext(log.WithContext(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(&c.quiet, "quiet", "q", false, "only log warnings and errors")

	root.AddCommand(c.compileCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// engineOpts are the flags shared by commands that invoke gnuplot.
type engineOpts struct {
	command string
	timeout int // seconds
}

func (o *engineOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.command, "gnuplot", os.Getenv(envEngine), "gnuplot command line (env "+envEngine+")")
	cmd.Flags().IntVar(&o.timeout, "timeout", int(engine.DefaultTimeout.Seconds()), "seconds before a gnuplot run is killed")
}

func (o *engineOpts) engine() (*engine.Engine, error) {
	eng, err := engine.New(o.command)
	if err != nil {
		return nil, err
	}
	if o.timeout < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "timeout cannot be negative")
	}
	eng.Timeout = time.Duration(o.timeout) * time.Second
	return eng, nil
}

// newRunner creates a pipeline runner backed by the file cache.
func (c *CLI) newRunner(eng *engine.Engine, noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, eng, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Descriptions
// =============================================================================

// loadDescription reads path, or stdin when path is "-". Stdin has no file
// extension, so its format comes from the --format flag.
func loadDescription(cmd *cobra.Command, path, format string) (*config.Description, error) {
	if path != "-" {
		if format != "" {
			data, err := os.ReadFile(path)
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "description %s", path)
			}
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
			}
			return config.Parse(data, config.Format(format))
		}
		return config.Load(path)
	}
	if format == "" {
		format = string(config.FormatTOML)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
	}
	return config.Parse(data, config.Format(format))
}

// termOpts override the description's terminal from the command line.
type termOpts struct {
	device string
	output string
	format string
}

func (o *termOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.device, "term", "t", "", `terminal type and options, e.g. "svg size 800,600"`)
	cmd.Flags().StringVar(&o.format, "format", "", "description format (toml, yaml, json); inferred from the file extension")
	cmd.ValidArgsFunction = completeDescription
	_ = cmd.RegisterFlagCompletionFunc("term", completeTerminal)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormat)
}

func (o *termOpts) apply(desc *config.Description) {
	if o.device != "" {
		desc.Terminal.Device = o.device
	}
	if o.output != "" {
		desc.Terminal.Path = o.output
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/plotscript/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
