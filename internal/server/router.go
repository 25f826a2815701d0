package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sjsage522/pricecompare/config"
	"sjsage522/pricecompare/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(logger.ForServer()))

	router.GET("/health", handler.HealthCheck)

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	router.POST("/compare", RateLimitMiddleware(limiter), handler.Compare)

	return router
}

// Run serves router on the configured port until ctx is cancelled
func Run(ctx context.Context, cfg *config.Config, router http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log := logger.ForServer()
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting HTTP server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
