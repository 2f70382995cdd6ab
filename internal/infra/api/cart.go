package api

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type addCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type removeCartRequest struct {
	ItemID string `json:"item_id"`
}

// GET /cart
func (c *Client) Get(ctx context.Context, token string) (model.AuthCart, error) {
	var cart model.AuthCart
	if err := c.doJSON(ctx, http.MethodGet, "/cart", requestOptions{bearer: token}, nil, &cart); err != nil {
		return model.AuthCart{}, err
	}
	if cart.Items == nil {
		cart.Items = []model.AuthCartItem{}
	}
	return cart, nil
}

// POST /cart/add（同一商品の加算はサーバー側）
func (c *Client) Add(ctx context.Context, token string, in repo.AddCartItemInput) error {
	return c.doJSON(ctx, http.MethodPost, "/cart/add",
		requestOptions{bearer: token, idempotencyKey: in.IdempotencyKey},
		addCartRequest{ProductID: in.ProductID, Quantity: in.Quantity},
		nil,
	)
}

// POST /cart/remove
func (c *Client) Remove(ctx context.Context, token string, itemID string) error {
	return c.doJSON(ctx, http.MethodPost, "/cart/remove",
		requestOptions{bearer: token},
		removeCartRequest{ItemID: itemID},
		nil,
	)
}
