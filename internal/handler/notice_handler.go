package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type NoticeHandler struct {
	board *usecase.NoticeBoard
}

func NewNoticeHandler(board *usecase.NoticeBoard) *NoticeHandler {
	return &NoticeHandler{board: board}
}

func (h *NoticeHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/notices", h.drain)
}

// 取得した通知は消える
func (h *NoticeHandler) drain(c echo.Context) error {
	return c.JSON(http.StatusOK, h.board.Drain())
}
