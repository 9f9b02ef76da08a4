package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/SaiNageswarS/go-mvc-boot/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type BootServer struct {
	app             *App
	http            *http.Server
	ln              net.Listener
	shutdownTimeout time.Duration
}

func (s *BootServer) App() *App { return s.app }

// Handler is the root handler: dispatch, /metrics, /health and extras.
func (s *BootServer) Handler() http.Handler { return s.http.Handler }

func (s *BootServer) Addr() string { return s.ln.Addr().String() }

// Close releases the listener of a server that was built but never served.
func (s *BootServer) Close() error { return s.ln.Close() }

// Serve blocks until ctx is cancelled or the server fails, then shuts down
// gracefully within the configured timeout.
func (s *BootServer) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting web server at", zap.String("addr", s.Addr()))
		if err := s.http.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down web server", zap.Duration("timeout", s.shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
