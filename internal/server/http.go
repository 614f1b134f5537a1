package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jmrodas/parkings-api/internal/logger"
)

// HTTPServer serves the REST API.
type HTTPServer struct {
	server *http.Server
	logger *logger.Logger
}

var _ Server = (*HTTPServer)(nil)

// NewHTTPServer builds an HTTP server for the given address and handler.
// requestTimeout bounds how long one request may take end to end.
func NewHTTPServer(address string, handler http.Handler, requestTimeout time.Duration, log *logger.Logger) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:              address,
			Handler:           http.TimeoutHandler(handler, requestTimeout, ""),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log,
	}
}

// Run serves until the listener fails or Shutdown is called.
func (s *HTTPServer) Run() error {
	s.logger.Info().Str("address", s.server.Addr).Msg("HTTP server listening")

	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// Shutdown drains in-flight requests.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
