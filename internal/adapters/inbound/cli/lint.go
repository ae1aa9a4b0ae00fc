package cli

import (
	"encoding/json"
	"fmt"

	"github.com/openkraft/licensekit/internal/adapters/outbound/tui"
	"github.com/openkraft/licensekit/internal/application"
	"github.com/openkraft/licensekit/internal/domain"
	"github.com/spf13/cobra"
)

func newLintCmd(g *globals) *cobra.Command {
	var (
		summary    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "lint [path]",
		Short: "List files without license information",
		Long: "Scan the project and print every file that has no license identifier, one per line. " +
			"Exits with status 1 when any file is listed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath := projectArg(args)

			cfg, err := g.projectConfig(projectPath)
			if err != nil {
				return err
			}
			logger := g.logger(cmd.ErrOrStderr(), cfg)

			report, err := application.NewLintService(newScanService(logger)).Lint(projectPath, cfg)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				for _, p := range report.Result.NonCompliantPaths {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
			}

			if summary {
				fmt.Fprint(cmd.ErrOrStderr(), tui.RenderLintSummary(report))
			}

			if !report.Result.IsCompliant {
				return domain.ErrNonCompliant
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "Print a styled summary to stderr")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the lint report as JSON")

	return cmd
}
