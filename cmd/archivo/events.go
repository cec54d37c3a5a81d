package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/archivo/archivo/internal/config"
	"github.com/archivo/archivo/internal/database"
	"github.com/archivo/archivo/internal/logger"
	"github.com/archivo/archivo/internal/service"
)

func newEventsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Stream catalog events from Redis until interrupted",
		Long: "Subscribes to the catalog events channel using the server configuration " +
			"(config.yaml and ARCHIVO_* variables) and prints each event as JSON.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !cfg.Redis.Enabled {
				return errors.New("redis is disabled; set ARCHIVO_REDIS_ENABLED=true")
			}

			log := logger.NewWithWriter(os.Stderr, cfg.Log.Level, "console").WithComponent("events")

			rdb, err := database.NewRedis(cfg.Redis)
			if err != nil {
				return fmt.Errorf("failed to connect to Redis: %w", err)
			}
			defer rdb.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			events, cleanup, err := service.SubscribeEvents(ctx, rdb, cfg.Catalog.EventsChannel, log)
			if err != nil {
				return err
			}
			defer cleanup()

			log.Info().Str("channel", cfg.Catalog.EventsChannel).Msg("listening for catalog events")
			for {
				select {
				case <-ctx.Done():
					return nil
				case evt, ok := <-events:
					if !ok {
						return nil
					}
					if err := c.print(evt); err != nil {
						return err
					}
				}
			}
		},
	}
}
