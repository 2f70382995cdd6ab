package api

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
)

// GET /products/{id}
func (c *Client) FindByID(ctx context.Context, productID string) (model.Product, error) {
	var p model.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+escape(productID), requestOptions{}, nil, &p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}
