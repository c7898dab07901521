package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"event_marketplace/internal/bootstrap"
	"event_marketplace/internal/infrastructure/config"
	"event_marketplace/internal/infrastructure/notification"
	"event_marketplace/internal/infrastructure/observability"
	"event_marketplace/internal/worker"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := observability.NewLogger(cfg.ServiceName+"-worker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to startup the worker")
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn().Err(err).Msg("release resources")
		}
	}()

	var wg sync.WaitGroup

	consumer, err := bootstrap.NewConsumer(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect event consumer")
	}
	if consumer != nil {
		defer consumer.Close()
		sender := notification.NewEmailSender(cfg.NotificationFrom, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Run(ctx, sender.Handle); err != nil {
				logger.Error().Err(err).Msg("event consumer stopped")
				stop()
			}
		}()
	}

	sweeper := worker.NewSweeper(cfg.SweepInterval, logger, worker.Jobs(c.Quotes, c.Bookings, c.Payments)...)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	logger.Info().Dur("interval", cfg.SweepInterval).Bool("consumer", consumer != nil).Msg("worker started")
	wg.Wait()
	logger.Info().Msg("worker stopped")
}
