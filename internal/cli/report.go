package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/terracart/terracart/internal/config"
	"github.com/terracart/terracart/internal/history"
	"github.com/terracart/terracart/internal/impact/badge"
	"github.com/terracart/terracart/internal/impact/equiv"
	"github.com/terracart/terracart/internal/impact/timeline"
	"github.com/terracart/terracart/internal/report"
)

// NewImpactReportCmd creates the impact report command: it computes a
// user's eco-impact report from their purchase history.
func NewImpactReportCmd() *cobra.Command {
	var userID string
	var timeframeFlag string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute a user's eco-impact report",
		Long: `Computes totals, a gap-filled timeline, badge progress, and
human-relatable equivalents from a user's purchase history.

A user with no purchases gets a zero-valued report, not an error. If the
order store cannot be reached within the configured timeout the command
fails without guessing partial data.`,
		Example: `  # Trailing 30 days, one bucket per day
  terracart impact report --user 7f9c3e2a --timeframe month

  # Full history as JSON
  terracart impact report --user 7f9c3e2a --timeframe all --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImpactReport(cmd, userID, timeframeFlag, format)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user identifier")
	cmd.Flags().StringVar(&timeframeFlag, "timeframe", string(timeline.TimeframeMonth),
		"reporting window: month, year, or all")
	cmd.Flags().StringVar(&format, "format", "", "output format: text or json (default json when piped)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

// runImpactReport wires the collaborators from config and prints the
// report.
func runImpactReport(cmd *cobra.Command, userID, timeframeFlag, format string) error {
	tf, err := timeline.ParseTimeframe(timeframeFlag)
	if err != nil {
		return err
	}

	cfg := config.FromContext(cmd.Context())
	svc, cleanup, err := buildReportService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	rep, err := svc.ComputeReport(cmd.Context(), userID, tf)
	if err != nil {
		return err
	}

	if format == "" {
		format = "json"
		if isTerminal(os.Stdout) {
			format = "text"
		}
	}

	switch format {
	case "json":
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(out))
	case "text":
		printReportText(cmd, rep)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	return nil
}

// printReportText renders the report for terminal use.
func printReportText(cmd *cobra.Command, rep *report.Report) {
	cmd.Printf("Eco impact for %s (%s)\n\n", rep.UserID, rep.Timeframe)
	cmd.Printf("Carbon saved:    %.1f kg\n", rep.TotalCarbonSaved)
	cmd.Printf("Water saved:     %.1f L\n", rep.TotalWaterSaved)
	cmd.Printf("Plastic reduced: %.1f kg\n\n", rep.TotalPlasticReduced)

	eq := equiv.Equivalents{
		TreesPlanted:      rep.CarbonEquivalent,
		ShowersEquivalent: rep.WaterEquivalent,
		BottlesEquivalent: rep.PlasticEquivalent,
	}
	cmd.Println(eq.DisplayText())

	cmd.Printf("\nBadges:\n")
	for _, b := range rep.Badges {
		mark := " "
		if b.Achieved {
			mark = "x"
		}
		cmd.Printf("  [%s] %-20s %.0f / %.0f\n", mark, b.Name, b.Progress, b.Target)
	}
}

// buildReportService assembles the report service and its collaborators
// from configuration. The returned cleanup closes any opened connections.
func buildReportService(cfg *config.Config) (*report.Service, func(), error) {
	if cfg.Database.DSN == "" {
		return nil, nil, fmt.Errorf("no order store configured: set database.dsn or %s", config.EnvDatabaseDSN)
	}

	source, err := history.OpenPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = source.Close() }

	catalog, err := loadCatalog(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	opts := []report.Option{
		report.WithTimeout(time.Duration(cfg.History.TimeoutSeconds) * time.Second),
	}
	if cache, closeCache := buildCache(cfg); cache != nil {
		opts = append(opts, report.WithCache(cache))
		prev := cleanup
		cleanup = func() { closeCache(); prev() }
	}

	return report.NewService(source, catalog, opts...), cleanup, nil
}

// loadCatalog returns the configured badge catalog, or the built-in one.
func loadCatalog(cfg *config.Config) (badge.Catalog, error) {
	if cfg.Badges.CatalogPath == "" {
		return badge.DefaultCatalog(), nil
	}
	return badge.LoadCatalog(cfg.Badges.CatalogPath)
}

// buildCache constructs the configured cache backend. Returns a nil cache
// when caching is disabled.
func buildCache(cfg *config.Config) (report.Cache, func()) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	if cfg.Cache.Backend == config.CacheBackendRedis && cfg.Cache.RedisAddr != "" {
		cache := report.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisDB, ttl)
		return cache, func() { _ = cache.Close() }
	}
	return report.NewMemoryCache(ttl), func() {}
}
