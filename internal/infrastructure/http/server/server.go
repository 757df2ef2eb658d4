package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/smart-insights/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/smart-insights/pkg/config"
	pkgvalidator "github.com/johnquangdev/smart-insights/pkg/validator"
)

// New creates an Echo instance with the validator and shared middleware installed
func New(cfg *config.Config, logger *zap.Logger) *echo.Echo {
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = true

	middleware.Register(e, &cfg.Server, logger)
	return e
}

// Run serves until SIGINT/SIGTERM, then shuts down within the configured timeout
func Run(e *echo.Echo, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, e, cfg.ServerAddr(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
}

// Serve starts the server and shuts it down gracefully once ctx is done
func Serve(ctx context.Context, e *echo.Echo, addr string, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Println("✅ Server stopped gracefully")
	return nil
}
