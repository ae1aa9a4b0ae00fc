package cli

import (
	"fmt"
	"path/filepath"

	"github.com/openkraft/licensekit/internal/adapters/outbound/config"
	"github.com/openkraft/licensekit/internal/domain"
	"github.com/spf13/cobra"
)

func newInitCmd(g *globals) *cobra.Command {
	var (
		excludes []string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .licensekit.yaml configuration file",
		Long:  "Create a .licensekit.yaml in the project root. The global --ignore-debian flag is recorded in the file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(projectArg(args))
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := domain.DefaultConfig()
			cfg.IgnoreDebian = g.v.GetBool(keyIgnoreDebian)
			cfg.ExcludePaths = excludes
			if err := cfg.Validate(); err != nil {
				return err
			}

			if _, err := config.New().Write(absPath, cfg, force); err != nil {
				if !force {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&excludes, "exclude", nil, "Paths to add to exclude_paths")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .licensekit.yaml")

	return cmd
}
