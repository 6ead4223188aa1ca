package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"resourceshub/config"

	"github.com/rs/zerolog"
)

// listen binds the configured port, moving to the next one while the port is
// in use, up to cfg.PortAttempts tries.
func listen(cfg config.ServerConfig, log zerolog.Logger) (net.Listener, error) {
	attempts := cfg.PortAttempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		port := cfg.Port + i
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			if i > 0 {
				log.Warn().Int("requested", cfg.Port).Int("port", port).Msg("Port in use, using fallback")
			}
			return ln, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no free port in %d-%d: %w", cfg.Port, cfg.Port+attempts-1, lastErr)
}

// serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within cfg.ShutdownTimeout.
func serve(h http.Handler, cfg config.ServerConfig, log zerolog.Logger) error {
	ln, err := listen(cfg, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("Server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("Server exited gracefully")
	return nil
}
