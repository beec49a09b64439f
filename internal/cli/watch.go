package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/terracart/terracart/internal/config"
	"github.com/terracart/terracart/internal/history"
	"github.com/terracart/terracart/internal/logging"
	"github.com/terracart/terracart/internal/report"
)

// NewOrdersWatchCmd creates the orders watch command: a long-running worker
// that consumes order events and eagerly invalidates cached reports for the
// ordering user.
func NewOrdersWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Consume order events and invalidate cached reports",
		Long: `Tails the configured Kafka order-event topic. Each order event drops
every cached report for the ordering user, so report caches never serve a
window that predates a purchase for longer than one fetch.

Runs until interrupted.`,
		Example: `  TERRACART_KAFKA_BROKERS=localhost:9092 terracart orders watch`,
		RunE:    runOrdersWatch,
	}
}

// runOrdersWatch wires the consumer to the configured cache backend and
// runs it until SIGINT/SIGTERM.
func runOrdersWatch(cmd *cobra.Command, _ []string) error {
	cfg := config.FromContext(cmd.Context())

	if len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("no Kafka brokers configured: set kafka.brokers or %s", config.EnvKafkaBrokers)
	}
	if cfg.Cache.Backend != config.CacheBackendRedis || cfg.Cache.RedisAddr == "" {
		return fmt.Errorf("orders watch requires the redis cache backend: an in-process cache cannot be invalidated from a worker")
	}

	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	cache := report.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisDB, ttl)
	defer func() { _ = cache.Close() }()

	consumer := history.NewOrderConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, cache)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cliLogger := logging.ComponentLogger(logging.FromContext(ctx), "cli")
	cliLogger.Info().
		Strs("brokers", cfg.Kafka.Brokers).
		Str("topic", cfg.Kafka.Topic).
		Msg("watching order events")

	return consumer.Run(ctx)
}
