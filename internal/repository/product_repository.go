package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 商品の取得だけを約束（匿名カートの価格スナップショット用）。
type ProductRepository interface {
	FindByID(ctx context.Context, productID string) (model.Product, error)
}
