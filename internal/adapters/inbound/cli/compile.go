package cli

import (
	"fmt"
	"os"

	"github.com/openkraft/licensekit/internal/application"
	"github.com/openkraft/licensekit/internal/domain/licensedb"
	"github.com/spf13/cobra"
)

func newCompileCmd(g *globals) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compile [path]",
		Short: "Print an SPDX 2.1 bill of materials for the project",
		Long: "Scan the project and print an SPDX 2.1 tag-value document describing the license and " +
			"copyright information of every file.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath := projectArg(args)

			cfg, err := g.projectConfig(projectPath)
			if err != nil {
				return err
			}
			logger := g.logger(cmd.ErrOrStderr(), cfg)

			svc := application.NewCompileService(newScanService(logger), licensedb.Default(), "licensekit", version)
			doc, scan, err := svc.Compile(projectPath, cfg)
			if err != nil {
				return err
			}
			if n := len(scan.Errors); n > 0 {
				logger.Warn("document compiled with recoverable errors", "count", n)
			}

			if output == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
				return err
			}
			if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			logger.Info("wrote SPDX document", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the document to this file instead of stdout")

	return cmd
}
