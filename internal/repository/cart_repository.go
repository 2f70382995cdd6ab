package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// POST /cart/add の入力
type AddCartItemInput struct {
	ProductID string
	Quantity  int64
	// 空なら送らない
	IdempotencyKey string
}

// サーバー側カート（認証済みのみ）。
// 変更系は結果を返さない。呼び出し側は必ずGetし直す。
type CartRepository interface {
	Get(ctx context.Context, token string) (model.AuthCart, error)
	Add(ctx context.Context, token string, in AddCartItemInput) error
	Remove(ctx context.Context, token string, itemID string) error
}
