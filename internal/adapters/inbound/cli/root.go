package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/openkraft/licensekit/internal/adapters/outbound/config"
	"github.com/openkraft/licensekit/internal/adapters/outbound/debian"
	"github.com/openkraft/licensekit/internal/adapters/outbound/extractor"
	"github.com/openkraft/licensekit/internal/adapters/outbound/scanner"
	"github.com/openkraft/licensekit/internal/adapters/outbound/vcsignore"
	"github.com/openkraft/licensekit/internal/application"
	"github.com/openkraft/licensekit/internal/domain"
	"github.com/openkraft/licensekit/internal/slogutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
)

const (
	keyIgnoreDebian = "ignore_debian"
	keyLogLevel     = "log_level"
)

// globals carries the persistent flags shared by every subcommand.
type globals struct {
	v       *viper.Viper
	verbose int
	quiet   bool
}

func newRootCmd() *cobra.Command {
	g := &globals{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "licensekit",
		Short: "Check and report the licensing of every file in a project",
		Long: "licensekit finds the SPDX license and copyright information of every file in a project, " +
			"reports the files that have none, and compiles an SPDX 2.1 bill of materials.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.Bool("ignore-debian", false, "Do not use debian/copyright or .reuse/dep5 to find license information")
	pf.CountVarP(&g.verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "Suppress all log output")

	_ = g.v.BindPFlag(keyIgnoreDebian, pf.Lookup("ignore-debian"))
	g.v.SetEnvPrefix("LICENSEKIT")
	_ = g.v.BindEnv(keyIgnoreDebian)
	_ = g.v.BindEnv(keyLogLevel)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newLintCmd(g))
	cmd.AddCommand(newCompileCmd(g))
	cmd.AddCommand(newInitCmd(g))
	cmd.AddCommand(newMCPCmd(g))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI. Errors other than a failed lint are printed to stderr.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil && !errors.Is(err, domain.ErrNonCompliant) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// projectConfig loads .licensekit.yaml and overlays flags and environment.
// Precedence: flag > environment > file > default.
func (g *globals) projectConfig(projectPath string) (domain.ProjectConfig, error) {
	cfg, err := config.New().Load(projectPath)
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}
	if g.v.IsSet(keyIgnoreDebian) {
		cfg.IgnoreDebian = g.v.GetBool(keyIgnoreDebian)
	}
	if g.v.IsSet(keyLogLevel) {
		cfg.LogLevel = g.v.GetString(keyLogLevel)
	}
	return cfg, nil
}

// logger builds the diagnostic logger. -q and -v win over log_level.
func (g *globals) logger(w io.Writer, cfg domain.ProjectConfig) *slog.Logger {
	level := slogutil.LevelFromVerbosity(g.verbose, g.quiet)
	if !g.quiet && g.verbose == 0 && cfg.LogLevel != "" {
		level = slogutil.LevelFromString(cfg.LogLevel)
	}
	return slogutil.NewLogger(w, level)
}

func newScanService(logger *slog.Logger) *application.ScanService {
	return application.NewScanService(
		scanner.New(logger),
		vcsignore.New(true),
		debian.New(),
		extractor.New(),
		logger,
	)
}

func projectArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
