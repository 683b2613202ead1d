package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/plotscript/pkg/buildinfo"
)

// versionInfo is printed by `plotscript version --json`.
type versionInfo struct {
	buildinfo.Info
	Engine        string `json:"engine"`
	EngineVersion string `json:"engine_version,omitempty"`
	EngineError   string `json:"engine_error,omitempty"`
}

// versionCommand reports the build and the gnuplot it would run.
func (c *CLI) versionCommand() *cobra.Command {
	var (
		eng    engineOpts
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print plotscript and gnuplot versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := eng.engine()
			if err != nil {
				return err
			}
			info := versionInfo{Info: buildinfo.Get(), Engine: e.String()}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			if v, err := e.Version(ctx); err != nil {
				info.EngineError = err.Error()
			} else {
				info.EngineVersion = v
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			printKeyValue(out, "version", info.Version)
			printKeyValue(out, "commit", info.Commit)
			printKeyValue(out, "built", info.Date)
			printKeyValue(out, "go", info.GoVersion)
			if info.EngineError != "" {
				printWarning(out, "%s: %s", info.Engine, info.EngineError)
			} else {
				printKeyValue(out, "engine", info.EngineVersion)
			}
			return nil
		},
	}

	eng.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}
