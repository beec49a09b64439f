// Package cli implements the terracart command tree: impact scoring and
// reporting for catalog/admin tooling, and the order-event worker that keeps
// report caches fresh.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/terracart/terracart/internal/config"
	"github.com/terracart/terracart/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root cobra command for the terracart CLI.
// It wires configuration loading, logging, and the impact/orders subcommand
// groups.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "terracart",
		Short:   "Terracart eco-impact tooling",
		Long:    "Terracart: score product impact records and compute per-user eco-impact reports",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupRunContext(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to config file (YAML)")
	cmd.AddCommand(newImpactCmd(), newOrdersCmd())

	return cmd
}

const rootCmdExample = `  # Score a product impact record
  terracart impact score --record record.yaml

  # Compute a user's impact report for the trailing 30 days
  terracart impact report --user 7f9c3e2a --timeframe month

  # Emit the report as JSON for the storefront
  terracart impact report --user 7f9c3e2a --timeframe all --format json

  # Run the order-event worker that invalidates cached reports
  terracart orders watch`

// newImpactCmd creates the impact command group.
func newImpactCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "impact", Short: "Impact scoring and reporting commands"}
	cmd.AddCommand(NewImpactScoreCmd(), NewImpactReportCmd())
	return cmd
}

// newOrdersCmd creates the orders command group.
func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "orders", Short: "Order-event processing commands"}
	cmd.AddCommand(NewOrdersWatchCmd())
	return cmd
}

// setupRunContext loads configuration, applies the debug flag, and attaches
// config and logger to the command context for subcommands.
func setupRunContext(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = logging.FormatConsole
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Out:    cmd.ErrOrStderr(),
	})

	ctx := config.WithContext(cmd.Context(), cfg)
	ctx = logging.WithContext(ctx, logger)
	cmd.SetContext(ctx)

	cliLogger := logging.ComponentLogger(logger, "cli")
	cliLogger.Debug().
		Str("command", cmd.Name()).
		Msg("command started")

	return nil
}
