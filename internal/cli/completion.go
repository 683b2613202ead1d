package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/plotscript/pkg/config"
	"github.com/matzehuels/plotscript/pkg/terminal"
)

// descriptionExts are the file extensions offered for description arguments.
var descriptionExts = []string{"toml", "yaml", "yml", "json"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for plotscript.

Besides subcommands and flags, the scripts complete description files
(.toml, .yaml, .yml, .json), terminal names for --term and encodings
for --format.

Bash:
  $ source <(plotscript completion bash)

Zsh:
  $ plotscript completion zsh > "${fpath[1]}/_plotscript"

Fish:
  $ plotscript completion fish | source

PowerShell:
  PS> plotscript completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeDescription offers description files for the first argument only.
func completeDescription(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return descriptionExts, cobra.ShellCompDirectiveFilterFileExt
}

// completeTerminal offers terminal names. Options such as "size 800,600"
// are typed by hand once the name is complete.
func completeTerminal(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if strings.Contains(toComplete, " ") {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return terminal.Names(), cobra.ShellCompDirectiveNoFileComp
}

func completeFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		string(config.FormatTOML) + "\tTOML description",
		string(config.FormatYAML) + "\tYAML description",
		string(config.FormatJSON) + "\tJSON description",
	}, cobra.ShellCompDirectiveNoFileComp
}
