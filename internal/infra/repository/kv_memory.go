package repository

import (
	"context"
	"sync"

	repo "storefront/internal/repository"
)

// プロセス内だけのストレージ（テスト・--ephemeral 用）
type KVMemoryRepository struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewKVMemoryRepository() *KVMemoryRepository {
	return &KVMemoryRepository{values: map[string][]byte{}}
}

func (r *KVMemoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.values[key]
	if !ok {
		return nil, repo.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (r *KVMemoryRepository) Put(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	r.values[key] = v
	return nil
}

func (r *KVMemoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.values, key)
	return nil
}
