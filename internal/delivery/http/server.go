package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"culturate/internal/application"
)

const shutdownTimeout = 5 * time.Second

// Server runs the gin engine as a managed service with graceful
// shutdown.
type Server struct {
	addr     string
	services *application.Service
	log      Logger

	httpServer *http.Server
}

func NewServer(addr string, services *application.Service, log Logger) *Server {
	return &Server{
		addr:     addr,
		services: services,
		log:      log,
	}
}

func (s *Server) Init() error {
	handler := NewHandler(s.services, s.log)
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: NewRouter(handler),
	}
	return nil
}

func (s *Server) Run(ctx context.Context) {
	s.log.Info("http server listening", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error("http server error", "error", err.Error())
	}
}

func (s *Server) Stop() {
	if s.httpServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.log.Error("http server shutdown error", "error", err.Error())
	}
}
