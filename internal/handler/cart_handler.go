package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	sf *usecase.Storefront
}

// DI
func NewCartHandler(sf *usecase.Storefront) *CartHandler {
	return &CartHandler{sf: sf}
}

type AddCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// /cart と明細削除を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")

	g.GET("", h.getCart)
	g.POST("", h.addToCart)
	g.DELETE("/local/index/:index", h.deleteLocalAt)
	g.DELETE("/local/product/:product_id", h.deleteLocalProduct)
	g.DELETE("/server/:item_id", h.deleteServerItem)
}

// ?refresh=1 ならサーバー側カートを取り直してから返す
func (h *CartHandler) getCart(c echo.Context) error {
	ctx := c.Request().Context()

	if c.QueryParam("refresh") == "1" {
		if err := h.sf.Refresh(ctx); err != nil {
			return writeError(c, err)
		}
	}

	return c.JSON(http.StatusOK, h.sf.View(ctx))
}

func (h *CartHandler) addToCart(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ctx := c.Request().Context()
	if err := h.sf.AddToCart(ctx, req.ProductID, req.Quantity); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, h.sf.View(ctx))
}

func (h *CartHandler) deleteLocalAt(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid index"})
	}

	ctx := c.Request().Context()
	if err := h.sf.RemoveLocalAt(ctx, index); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.sf.View(ctx))
}

func (h *CartHandler) deleteLocalProduct(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.sf.RemoveLocalProduct(ctx, c.Param("product_id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.sf.View(ctx))
}

func (h *CartHandler) deleteServerItem(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.sf.RemoveServerItem(ctx, c.Param("item_id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.sf.View(ctx))
}
