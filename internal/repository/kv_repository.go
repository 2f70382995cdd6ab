package repository

import "context"

// ローカル永続ストレージ（キーごとに値を丸ごと置き換える）
type KVRepository interface {
	// 無ければ ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
