package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/plotscript/internal/api"
	"github.com/matzehuels/plotscript/pkg/cache"
	"github.com/matzehuels/plotscript/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	redisURL string
	prefix   string
	noCache  bool
	engine   engineOpts
}

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve compile and render over HTTP",
		Long: `Serve compile and render over HTTP.

Endpoints:
  GET  /healthz      build and engine information
  POST /v1/compile   description in, script out
  POST /v1/render    description in, rendered artifact out

With --redis the artifact cache is shared through Redis; otherwise the
local file cache is used.`,
		Example: `  plotscript serve --addr :9000
  plotscript serve --redis redis://localhost:6379/0 --cache-prefix staging:`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	opts.engine.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", os.Getenv(envRedis), "Redis URL for a shared cache (env "+envRedis+")")
	cmd.Flags().StringVar(&opts.prefix, "cache-prefix", "", "prefix for every cache key")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()
	logger := log.FromContext(ctx)

	eng, err := opts.engine.engine()
	if err != nil {
		return err
	}
	if v, err := eng.Version(ctx); err != nil {
		logger.Warn("gnuplot unavailable; /v1/render will fail", "engine", eng.String(), "err", err)
	} else {
		logger.Info("using engine", "version", v)
	}

	var store cache.Cache
	switch {
	case opts.noCache:
		store = cache.NewNullCache()
	case opts.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return err
		}
		logger.Info("using redis cache")
		store = rc
	default:
		if store, err = newCache(false); err != nil {
			return err
		}
	}
	defer store.Close()

	var keyer cache.Keyer
	if opts.prefix != "" {
		keyer = cache.NewScopedKeyer(nil, opts.prefix)
	}

	runner := pipeline.NewRunner(store, keyer, eng, c.Logger)
	return api.New(runner, c.Logger).ListenAndServe(ctx, opts.addr)
}
