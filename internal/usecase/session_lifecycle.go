package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// セッションの遷移
// Generation は anonymous→authenticated の通し番号（それ以外の遷移では増えない）。
type SessionTransition struct {
	From       model.SessionState
	To         model.SessionState
	Generation uint64
}

func (t SessionTransition) SignedIn() bool {
	return !t.From.Authenticated() && t.To.Authenticated()
}

// 遷移ごとに同期的に呼ばれる
type SessionObserver func(ctx context.Context, t SessionTransition) error

// SessionLifecycle はアクセストークンの有無だけを管理する。
// トークンの取得・破棄はログイン処理側が行う。
type SessionLifecycle struct {
	mu     sync.Mutex
	kv     repo.KVRepository
	key    string
	logger *zap.Logger
	now    func() time.Time

	state      model.SessionState
	generation uint64
	observers  []SessionObserver
}

func NewSessionLifecycle(kv repo.KVRepository, key string, logger *zap.Logger) *SessionLifecycle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionLifecycle{
		kv:     kv,
		key:    key,
		logger: logger,
		now:    time.Now,
		state:  model.AnonymousSession(),
	}
}

// Subscribe は遷移の通知先を登録する（登録順に呼ぶ）。
func (s *SessionLifecycle) Subscribe(obs SessionObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

func (s *SessionLifecycle) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *SessionLifecycle) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Restore は保存済みトークンを読み戻す。遷移ではないので通知しない。
// 期限切れのJWTは破棄して anonymous にする。
func (s *SessionLifecycle) Restore(ctx context.Context) model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.logger.Warn("session read failed", zap.Error(err))
		}
		s.state = model.AnonymousSession()
		return s.state
	}

	token := string(raw)
	if token == "" || tokenExpired(token, s.now()) {
		if err := s.kv.Delete(ctx, s.key); err != nil {
			s.logger.Warn("stale session not removed", zap.Error(err))
		}
		s.state = model.AnonymousSession()
		return s.state
	}

	s.state = model.AuthenticatedSession(token)
	return s.state
}

// SignIn はトークンを保存して authenticated にする。
// 通知先のエラーはまとめて返す（遷移自体は成立している）。
func (s *SessionLifecycle) SignIn(ctx context.Context, token string) error {
	if token == "" || tokenExpired(token, s.now()) {
		return ErrInvalidToken
	}

	s.mu.Lock()
	prev := s.state
	s.state = model.AuthenticatedSession(token)
	if !prev.Authenticated() {
		s.generation++
	}
	t := SessionTransition{From: prev, To: s.state, Generation: s.generation}
	observers := append([]SessionObserver(nil), s.observers...)

	if err := s.kv.Put(ctx, s.key, []byte(token)); err != nil {
		s.logger.Warn("session not persisted", zap.Error(err))
	}
	s.mu.Unlock()

	return s.notify(ctx, t, observers)
}

// SignOut は anonymous に戻す（ログアウト）。
func (s *SessionLifecycle) SignOut(ctx context.Context) error {
	return s.signOut(ctx, "logout")
}

// ForceSignOut はAPIの401で呼ばれる。
func (s *SessionLifecycle) ForceSignOut(ctx context.Context) error {
	return s.signOut(ctx, "forced")
}

func (s *SessionLifecycle) signOut(ctx context.Context, reason string) error {
	s.mu.Lock()
	prev := s.state
	if !prev.Authenticated() {
		s.mu.Unlock()
		return nil
	}
	s.state = model.AnonymousSession()
	t := SessionTransition{From: prev, To: s.state, Generation: s.generation}
	observers := append([]SessionObserver(nil), s.observers...)

	if err := s.kv.Delete(ctx, s.key); err != nil {
		s.logger.Warn("session not removed", zap.Error(err))
	}
	s.mu.Unlock()

	s.logger.Info("signed out", zap.String("reason", reason))
	return s.notify(ctx, t, observers)
}

func (s *SessionLifecycle) notify(ctx context.Context, t SessionTransition, observers []SessionObserver) error {
	var errs []error
	for _, obs := range observers {
		if err := obs(ctx, t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// JWTなら exp を見る（署名は検証しない。秘密鍵はサーバーだけが持つ）。
// JWTでないトークンは期限不明として有効扱い。
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), false)
}
