package usecase

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/domain/model"

	"go.uber.org/zap"
)

// マージ元（AnonymousCartStore）
type AnonymousCart interface {
	Get(ctx context.Context) []model.CartLine
	Clear(ctx context.Context)
}

// マージ先（AuthenticatedCartService）
type AuthenticatedCart interface {
	AddItem(ctx context.Context, productID string, quantity int64, idempotencyKey string) error
	Fetch(ctx context.Context) (model.AuthCart, error)
}

type MergeResult struct {
	Merged int
	// この遷移では既にマージ済み
	Skipped bool
}

// 途中で失敗したマージ。残りの明細は匿名カートに残っている。
type MergeError struct {
	Merged    int
	Remaining int
	ProductID string
	Err       error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("cart merge stopped at %s (%d merged, %d remaining): %v", e.ProductID, e.Merged, e.Remaining, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}

// CartMergeCoordinator はログイン時に匿名カートをサーバー側カートへ移す。
// 明細は1件ずつ順番に送る（前の結果が返るまで次を送らない）。
// 1件でも失敗したらそこで止め、匿名カートは消さない。
type CartMergeCoordinator struct {
	mu     sync.Mutex
	anon   AnonymousCart
	carts  AuthenticatedCart
	logger *zap.Logger

	lastGeneration uint64
}

func NewCartMergeCoordinator(anon AnonymousCart, carts AuthenticatedCart, logger *zap.Logger) *CartMergeCoordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartMergeCoordinator{
		anon:   anon,
		carts:  carts,
		logger: logger,
	}
}

// OnSessionChange は SessionLifecycle に登録する。
// anonymous→authenticated の遷移でだけ動く。
func (c *CartMergeCoordinator) OnSessionChange(ctx context.Context, t SessionTransition) error {
	if !t.SignedIn() {
		return nil
	}
	_, err := c.MergeOnce(ctx, t.Generation)
	return err
}

// MergeOnce は遷移（generation）ごとに最大1回だけマージする。
// 失敗しても同じ遷移では再実行しない（次のログインで残りを送る）。
func (c *CartMergeCoordinator) MergeOnce(ctx context.Context, generation uint64) (MergeResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation <= c.lastGeneration {
		return MergeResult{Skipped: true}, nil
	}
	c.lastGeneration = generation

	return c.mergeLocked(ctx)
}

func (c *CartMergeCoordinator) mergeLocked(ctx context.Context) (MergeResult, error) {
	lines := c.anon.Get(ctx)
	if len(lines) == 0 {
		return MergeResult{}, nil
	}

	for i, line := range lines {
		if err := c.carts.AddItem(ctx, line.ProductID, line.Quantity, line.MergeKey); err != nil {
			c.logger.Warn("cart merge stopped",
				zap.String("product_id", line.ProductID),
				zap.Int("merged", i),
				zap.Int("remaining", len(lines)-i),
				zap.Error(err),
			)
			return MergeResult{Merged: i}, &MergeError{
				Merged:    i,
				Remaining: len(lines) - i,
				ProductID: line.ProductID,
				Err:       err,
			}
		}
	}

	c.anon.Clear(ctx)

	if _, err := c.carts.Fetch(ctx); err != nil {
		c.logger.Warn("cart refetch after merge failed", zap.Error(err))
	}

	c.logger.Info("cart merged", zap.Int("lines", len(lines)))
	return MergeResult{Merged: len(lines)}, nil
}
