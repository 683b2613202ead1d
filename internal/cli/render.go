package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/plotscript/pkg/config"
	"github.com/matzehuels/plotscript/pkg/errors"
	"github.com/matzehuels/plotscript/pkg/pipeline"
	"github.com/matzehuels/plotscript/pkg/terminal"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	term    termOpts
	engine  engineOpts
	script  string // also save the compiled script here
	noCache bool   // neither read nor write the artifact cache
	refresh bool   // skip the cache lookup but store the result
}

// renderCommand runs a description through gnuplot and writes the output.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <description>",
		Short: "Render a plot description with gnuplot",
		Long: `Render a plot description with gnuplot.

The output goes to --output, else to the terminal's output path in the
description, else next to the description with the terminal's extension.
Rendered output is cached under ~/.cache/plotscript keyed by the compiled
script, the terminal and the gnuplot command line.`,
		Example: `  plotscript render signals.toml
  plotscript render signals.toml --term "pdfcairo" -o signals.pdf
  plotscript render signals.toml --gnuplot "/opt/gnuplot/bin/gnuplot" --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	opts.term.register(cmd)
	opts.engine.register(cmd)
	cmd.Flags().StringVarP(&opts.term.output, "output", "o", "", "output file")
	cmd.Flags().StringVar(&opts.script, "script", "", "also write the compiled script to this file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached artifact exists")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := log.FromContext(ctx)
	out := cmd.OutOrStdout()

	desc, err := loadDescription(cmd, path, opts.term.format)
	if err != nil {
		return err
	}
	opts.term.apply(desc)
	if desc.Terminal.Type() == "" {
		return errors.New(errors.ErrCodeInvalidTerminal, "no terminal type; set [terminal] type in the description or pass --term")
	}
	desc.Terminal.Path = outputPath(path, desc)

	eng, err := opts.engine.engine()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(eng, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	logger.Debug("rendering", "description", path, "terminal", desc.Terminal.Type(), "engine", eng.String())
	prog := newProgress(logger)

	var spin *Spinner
	if c.Logger.GetLevel() == LogInfo {
		spin = newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+desc.Terminal.Path+"...")
		spin.Start()
	}
	res, err := runner.Render(ctx, desc, pipeline.RenderOptions{Refresh: opts.refresh})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(desc.Terminal.Path, res.Artifact, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", desc.Terminal.Path)
	}
	if opts.script != "" {
		if err := os.WriteFile(opts.script, []byte(res.Script), 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.script)
		}
	}

	prog.done("Rendered " + desc.Terminal.Path)
	printSuccess(out, "Rendered %s", desc.Terminal.Name())
	printStats(out, res.Graphs, len(res.Artifact), res.Cached)
	for _, w := range res.Warnings {
		printWarning(out, "%s", w)
	}
	printFile(out, desc.Terminal.Path)
	if opts.script != "" {
		printFile(out, opts.script)
	}
	return nil
}

// outputPath picks where the artifact is written. An explicit path wins;
// otherwise the description's name is reused with the terminal's extension.
func outputPath(descPath string, desc *config.Description) string {
	if p := desc.Terminal.Output(); p != "" {
		return p
	}
	ext := terminal.Extension(desc.Terminal)
	if descPath == "-" {
		return "plot" + ext
	}
	return strings.TrimSuffix(descPath, filepath.Ext(descPath)) + ext
}
