package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Server はローカルのHTTP画面（serve）。
type Server struct {
	echo   *echo.Echo
	logger *zap.Logger
}

func New(sf *usecase.Storefront, notices *usecase.NoticeBoard, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestLogger(logger))

	RegisterRoutes(e, sf, notices)
	return &Server{echo: e, logger: logger}
}

// テスト用
func (s *Server) Handler() http.Handler {
	return s.echo
}

// ctxが終わるまで待ってから止める
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}
