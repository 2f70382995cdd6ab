package usecase

import (
	"context"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// トークンの取得元（SessionLifecycle）
type SessionSource interface {
	State() model.SessionState
}

// AuthenticatedCartService はサーバー側カートの薄いラッパー。
// 変更系は成功後に必ずFetchし直し、ローカルで結果を組み立てない。
// 同時に呼ばれた場合の調停はしない（最後に返ってきたFetchが表示される）。
type AuthenticatedCartService struct {
	carts   repo.CartRepository
	session SessionSource
	logger  *zap.Logger

	mu            sync.Mutex
	cached        model.AuthCart
	hasCache      bool
	fetchState    model.OpState
	mutationState model.OpState
}

func NewAuthenticatedCartService(carts repo.CartRepository, session SessionSource, logger *zap.Logger) *AuthenticatedCartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthenticatedCartService{
		carts:         carts,
		session:       session,
		logger:        logger,
		fetchState:    model.OpIdleState(),
		mutationState: model.OpIdleState(),
	}
}

func (s *AuthenticatedCartService) token() (string, error) {
	st := s.session.State()
	if !st.Authenticated() {
		return "", ErrNotAuthenticated
	}
	return st.Token(), nil
}

// Fetch はサーバーのカートを取得する。
// 失敗しても直前のキャッシュは捨てない（戻り値もキャッシュ）。
func (s *AuthenticatedCartService) Fetch(ctx context.Context) (model.AuthCart, error) {
	token, err := s.token()
	if err != nil {
		return s.failFetch(err)
	}

	s.setFetchState(model.OpPendingState())

	cart, err := s.carts.Get(ctx, token)
	if err != nil {
		s.logger.Warn("cart fetch failed", zap.Error(err))
		return s.failFetch(err)
	}

	s.mu.Lock()
	s.cached = cart
	s.hasCache = true
	s.fetchState = model.OpSucceededState()
	s.mu.Unlock()

	return cart, nil
}

func (s *AuthenticatedCartService) failFetch(err error) (model.AuthCart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchState = model.OpFailedState(err)
	return s.cached, err
}

// AddItem はサーバーのカートに追加し、成功したらFetchし直す。
// 失敗時はローカル状態を一切変えない。
// 再取得の失敗は追加自体の失敗ではない（FetchStateに残る）。
func (s *AuthenticatedCartService) AddItem(ctx context.Context, productID string, quantity int64, idempotencyKey string) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if productID == "" {
		return ErrInvalidProduct
	}

	return s.mutate(ctx, func(token string) error {
		return s.carts.Add(ctx, token, repo.AddCartItemInput{
			ProductID:      productID,
			Quantity:       quantity,
			IdempotencyKey: idempotencyKey,
		})
	})
}

// RemoveItem はサーバー側の明細（item_id）を削除する。
func (s *AuthenticatedCartService) RemoveItem(ctx context.Context, itemID string) error {
	if itemID == "" {
		return repo.ErrNotFound
	}

	return s.mutate(ctx, func(token string) error {
		return s.carts.Remove(ctx, token, itemID)
	})
}

func (s *AuthenticatedCartService) mutate(ctx context.Context, call func(token string) error) error {
	token, err := s.token()
	if err != nil {
		return err
	}

	s.setMutationState(model.OpPendingState())

	if err := call(token); err != nil {
		s.logger.Warn("cart mutation failed", zap.Error(err))
		s.setMutationState(model.OpFailedState(err))
		return err
	}
	s.setMutationState(model.OpSucceededState())

	if _, err := s.Fetch(ctx); err != nil {
		s.logger.Warn("cart refetch after mutation failed", zap.Error(err))
	}
	return nil
}

// Cached は最後に取得できたカート（未取得ならfalse）。
func (s *AuthenticatedCartService) Cached() (model.AuthCart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached, s.hasCache
}

func (s *AuthenticatedCartService) FetchState() model.OpState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchState
}

func (s *AuthenticatedCartService) MutationState() model.OpState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutationState
}

// Reset はログアウト時にキャッシュを捨てる。
func (s *AuthenticatedCartService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = model.AuthCart{}
	s.hasCache = false
	s.fetchState = model.OpIdleState()
	s.mutationState = model.OpIdleState()
}

func (s *AuthenticatedCartService) setFetchState(st model.OpState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchState = st
}

func (s *AuthenticatedCartService) setMutationState(st model.OpState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutationState = st
}
