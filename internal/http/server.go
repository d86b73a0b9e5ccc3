// README: API server; owns the http.Server and its graceful shutdown.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"courier/internal/logger"
	"courier/internal/modules/customer"
	"courier/internal/modules/matching"
	"courier/internal/modules/order"
	"courier/internal/modules/partner"
	"courier/internal/modules/pricing"
	"courier/internal/modules/sender"
	"courier/internal/modules/traveler"
)

type ServerDeps struct {
	Traveler *traveler.Service
	Partner  *partner.Service
	Sender   *sender.Service
	Customer *customer.Service
	Order    *order.Service
	Matching *matching.Service
	Pricing  *pricing.Service
}

type Server struct {
	srv *http.Server
	log *zap.Logger
}

func NewServer(addr string, deps ServerDeps, allowedOrigins []string, log *zap.Logger) *Server {
	log = logger.OrNop(log)
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(deps, allowedOrigins, log),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is done, then shuts down within the grace period.
func (s *Server) Run(ctx context.Context, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("api listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	s.log.Info("shutting down")
	return s.srv.Shutdown(shutdownCtx)
}
