package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "event_marketplace/docs" // swagger spec, regenerated with swag init
	"event_marketplace/internal/adapter/http/handlers"
	"event_marketplace/internal/adapter/http/middleware"
	"event_marketplace/internal/bootstrap"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Run serves the API until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, c *bootstrap.Container) error {
	srv := &http.Server{
		Addr:              ":" + c.Config.Port,
		Handler:           NewRouter(c),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Log.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Log.Info().Msg("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(c *bootstrap.Container) *gin.Engine {
	if c.Config.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.Recovery(c.Log),
		middleware.Tracing(c.Config.ServiceName),
		middleware.AccessLog(c.Log),
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.NewAuthenticator(c.Config.JWTSecret)
	paymentHandler := handlers.NewPaymentHandler(c.Payments, c.Config.WebhookSecret, c.Log)

	// Public routes
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addGatewayRoutes(v1, paymentHandler)

	private := v1.Group("", auth.RequireAuth())
	addQuoteRoutes(private, handlers.NewQuoteHandler(c.Quotes))
	addBookingRoutes(private, handlers.NewBookingHandler(c.Bookings), paymentHandler)
	addListingRoutes(private, handlers.NewListingHandler(c.Listings))
	return router
}
