package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnonymousCartStore は未ログイン時のカートをローカルストレージに保持する。
// 読み書きはmuで直列化するので、add/remove/clearの途中状態は外から見えない。
// 書き込み失敗はリトライしない（メモリ上の状態がこのプロセスでは正）。
type AnonymousCartStore struct {
	mu     sync.Mutex
	kv     repo.KVRepository
	key    string
	logger *zap.Logger

	lines  []model.CartLine
	loaded bool

	newMergeKey func() string
}

func NewAnonymousCartStore(kv repo.KVRepository, key string, logger *zap.Logger) *AnonymousCartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnonymousCartStore{
		kv:          kv,
		key:         key,
		logger:      logger,
		newMergeKey: uuid.NewString,
	}
}

// Get は現在の明細を追加順で返す。失敗しない。
func (s *AnonymousCartStore) Get(ctx context.Context) []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked(ctx)
	return cloneLines(s.lines)
}

// Add は明細を追加する。同一商品は数量を加算し、マージキーを振り直す。
// 数量が1未満なら何もせず ErrInvalidQuantity。
func (s *AnonymousCartStore) Add(ctx context.Context, line model.CartLine) error {
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if line.ProductID == "" {
		return ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked(ctx)

	for i := range s.lines {
		if s.lines[i].ProductID == line.ProductID {
			// 価格スナップショットは最初に追加した時点のまま
			s.lines[i].Quantity += line.Quantity
			// 数量が変わったらキーも変える
			s.lines[i].MergeKey = s.newMergeKey()
			s.persistLocked(ctx)
			return nil
		}
	}

	if line.MergeKey == "" {
		line.MergeKey = s.newMergeKey()
	}
	s.lines = append(s.lines, line)
	s.persistLocked(ctx)
	return nil
}

// RemoveAt はindex番目の明細を消す。範囲外なら何もしない。
func (s *AnonymousCartStore) RemoveAt(ctx context.Context, index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked(ctx)

	if index < 0 || index >= len(s.lines) {
		return false
	}
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	s.persistLocked(ctx)
	return true
}

// RemoveProduct は商品の明細を消す。無ければ何もしない。
func (s *AnonymousCartStore) RemoveProduct(ctx context.Context, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked(ctx)

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persistLocked(ctx)
			return true
		}
	}
	return false
}

// Clear は全明細を消す。マージ完了後にだけ呼ばれる。
func (s *AnonymousCartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.lines = nil

	if err := s.kv.Delete(ctx, s.key); err != nil {
		s.logger.Warn("anonymous cart clear not persisted", zap.String("key", s.key), zap.Error(err))
	}
}

// 起動後最初のアクセスでストレージから読む。
// 無い・壊れている場合は空カート扱い。
func (s *AnonymousCartStore) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	s.lines = nil

	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.logger.Warn("anonymous cart read failed", zap.String("key", s.key), zap.Error(err))
		}
		return
	}

	var stored []model.CartLine
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Warn("anonymous cart corrupt, treating as empty", zap.String("key", s.key), zap.Error(err))
		return
	}

	index := map[string]int{}
	for _, l := range stored {
		//不正な明細は捨てる
		if l.ProductID == "" || l.Quantity < 1 {
			continue
		}
		//重複はまとめる（product_idで一意）
		if i, ok := index[l.ProductID]; ok {
			s.lines[i].Quantity += l.Quantity
			s.lines[i].MergeKey = s.newMergeKey()
			continue
		}
		index[l.ProductID] = len(s.lines)
		s.lines = append(s.lines, l)
	}
}

func (s *AnonymousCartStore) persistLocked(ctx context.Context) {
	lines := s.lines
	if lines == nil {
		lines = []model.CartLine{}
	}

	raw, err := json.Marshal(lines)
	if err != nil {
		s.logger.Warn("anonymous cart encode failed", zap.Error(err))
		return
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		s.logger.Warn("anonymous cart not persisted", zap.String("key", s.key), zap.Error(err))
	}
}

func cloneLines(lines []model.CartLine) []model.CartLine {
	out := make([]model.CartLine, len(lines))
	copy(out, lines)
	return out
}
