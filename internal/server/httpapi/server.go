package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hardbank/hardbank/internal/logging"
	"github.com/hardbank/hardbank/internal/server/services"
)

// Server is the HTTP boundary. It owns request parsing, the session cookie
// and response shaping; all decisions are delegated to the bank service.
type Server struct {
	bank    *services.Bank
	cookies *CookieHelper
	logger  logging.Logger
	addr    string
	engine  *gin.Engine
}

func NewServer(bank *services.Bank, cookies *CookieHelper, addr string, logger logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		bank:    bank,
		cookies: cookies,
		logger:  logger.With("module", "httpapi"),
		addr:    addr,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.POST("/login", s.handleLogin)
	s.engine.POST("/logout", s.handleLogout)
	s.engine.GET("/accounts/:id", s.handleViewAccount)
	s.engine.GET("/accounts/:id/transfers", s.handleListTransfers)
	s.engine.POST("/transfer", s.handleTransfer)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server starting", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
