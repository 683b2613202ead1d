package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/plotscript/pkg/errors"
)

// compileOpts holds the flags of the compile command.
type compileOpts struct {
	term   termOpts
	script string // file to write the script to; stdout when empty
}

// compileCommand prints or saves the script for a description without
// running gnuplot.
func (c *CLI) compileCommand() *cobra.Command {
	var opts compileOpts

	cmd := &cobra.Command{
		Use:   "compile <description>",
		Short: "Compile a plot description into a gnuplot script",
		Long: `Compile a plot description into a gnuplot script.

The script is printed to stdout unless --script names a file. Pass "-" to
read the description from stdin (TOML unless --format says otherwise).`,
		Example: `  plotscript compile signals.toml
  plotscript compile signals.yaml --term "svg size 640,480" --output signals.svg
  cat signals.json | plotscript compile - --format json --script signals.gp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompile(cmd, args[0], opts)
		},
	}

	opts.term.register(cmd)
	cmd.Flags().StringVar(&opts.term.output, "output", "", "plot output path written into the script")
	cmd.Flags().StringVarP(&opts.script, "script", "o", "", "write the script to this file instead of stdout")

	return cmd
}

func (c *CLI) runCompile(cmd *cobra.Command, path string, opts compileOpts) error {
	logger := log.FromContext(cmd.Context())

	desc, err := loadDescription(cmd, path, opts.term.format)
	if err != nil {
		return err
	}
	opts.term.apply(desc)

	runner, err := c.newRunner(nil, true)
	if err != nil {
		return err
	}
	res, err := runner.Compile(cmd.Context(), desc)
	if err != nil {
		return err
	}

	if opts.script == "" {
		_, err := cmd.OutOrStdout().Write([]byte(res.Script))
		return err
	}
	if err := os.WriteFile(opts.script, []byte(res.Script), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.script)
	}
	logger.Debug("wrote script", "path", opts.script, "graphs", res.Graphs)
	printSuccess(cmd.OutOrStdout(), "Compiled %s", plural(res.Graphs, "graph"))
	printFile(cmd.OutOrStdout(), opts.script)
	return nil
}
