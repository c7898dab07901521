package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"event_marketplace/internal/adapter/http/routes"
	"event_marketplace/internal/bootstrap"
	"event_marketplace/internal/infrastructure/config"
	"event_marketplace/internal/infrastructure/observability"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

// @title           Event Marketplace API
// @version         1.0
// @description     Quotes, bookings and payments between clients and event vendors.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := observability.NewLogger(cfg.ServiceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTelEnabled {
		shutdown, err := observability.InitTracer(ctx, cfg.ServiceName, cfg.Env, cfg.OTelEndpoint)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to start tracing")
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn().Err(err).Msg("tracer shutdown")
			}
		}()
	}

	c, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to startup the application")
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn().Err(err).Msg("release resources")
		}
	}()

	if err := routes.Run(ctx, c); err != nil {
		logger.Error().Err(err).Msg("http server stopped")
	}
}
