package infra

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/middleware"
)

// NewRouter returns a router with tracing, logging, panic recovery and request metrics attached
// and /metrics served.
func NewRouter(appName string, registerer prometheus.Registerer) *mux.Router {
	metrics := middleware.NewServerMetrics(appName, registerer)

	router := mux.NewRouter()
	router.StrictSlash(true)
	router.Use(
		otelmux.Middleware(appName),
		middleware.Logging,
		middleware.RecoverPanic,
		metrics.Middleware,
	)
	router.Handle("/metrics", middleware.MetricsHandler()).Methods(http.MethodGet)
	return router
}

func NewServer(c context.Context, address string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         address,
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      handler,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
}

// Serve blocks until c is done or the server fails, then shuts the server down.
func Serve(c context.Context, server *http.Server) error {
	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "main Serve").Logger()

	errCh := make(chan error, 1)
	go func() {
		logger := logger.With().Str(log.KeyProcess, "start server").Logger()
		logger.Info().Msgf("start listening request at %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("encounter error=%w while running server", err)
			return
		}
		errCh <- nil
	}()

	var serveErr error
	select {
	case <-c.Done():
		logger.Info().Str(log.KeyProcess, "shutdown server").Msg("received interuption signal shutting down")
	case serveErr = <-errCh:
		if serveErr != nil {
			logger.Error().Err(serveErr).Msg(serveErr.Error())
		}
	}

	logger = logger.With().Str(log.KeyProcess, "shutdown server").Logger()
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(c), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		err = fmt.Errorf("failed shutting down server with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return errors.Join(serveErr, err)
	}
	logger.Info().Msg("shutdown server")
	return serveErr
}
