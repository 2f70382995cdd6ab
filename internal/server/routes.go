package server

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, sf *usecase.Storefront, notices *usecase.NoticeBoard) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	handler.NewCartHandler(sf).RegisterRoutes(e)
	handler.NewSessionHandler(sf).RegisterRoutes(e)
	handler.NewNoticeHandler(notices).RegisterRoutes(e)
}
