package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"embedproxy/internal/gateway"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	router  *gin.Engine
	gateway *gateway.Gateway
	log     *zap.SugaredLogger
}

// New creates a new server instance
func New(gw *gateway.Gateway, log *zap.SugaredLogger) *Server {
	s := &Server{
		gateway: gw,
		log:     log,
		router:  gin.New(),
	}
	s.router.Use(requestID(log), accessLog(log), recovery(log))
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleHealthCheck())
	s.router.POST("/v1/embeddings", s.handleCreateEmbeddings())
	s.router.NoRoute(s.handleNotFound())
}

// Handler exposes the router, mainly for tests and embedding in other muxes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("starting embedding proxy", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Infow("shutting down embedding proxy")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
