package usecase

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// usecaseがValidatorInterfaceに依存する約束
type InputValidator interface {
	ValidateAddToCart(productID string, quantity int64) error
	ValidateLogin(email string, password string) error
	ValidateOTP(phone string, code string) error
}

type LoginResult struct {
	Session model.SessionStatus `json:"session"`
	// マージできずにローカルに残った明細数
	PendingLines int `json:"pending_lines"`
}

// Storefront は画面からの操作（カート追加・削除・ログイン）を受け付ける。
// セッション状態で匿名カートかサーバー側カートかに振り分ける。
// リモート呼び出しの失敗はすべて通知に変換し、呼び出し元にはHTTPErrorで返す。
type Storefront struct {
	anon      *AnonymousCartStore
	carts     *AuthenticatedCartService
	session   *SessionLifecycle
	merger    *CartMergeCoordinator
	products  repo.ProductRepository
	auth      repo.AuthRepository
	validator InputValidator
	notices   Notifier
	logger    *zap.Logger
}

func NewStorefront(
	anon *AnonymousCartStore,
	carts *AuthenticatedCartService,
	session *SessionLifecycle,
	merger *CartMergeCoordinator,
	products repo.ProductRepository,
	auth repo.AuthRepository,
	validator InputValidator,
	notices Notifier,
	logger *zap.Logger,
) *Storefront {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Storefront{
		anon:      anon,
		carts:     carts,
		session:   session,
		merger:    merger,
		products:  products,
		auth:      auth,
		validator: validator,
		notices:   notices,
		logger:    logger,
	}

	//マージが先、表示用の再取得が後
	session.Subscribe(merger.OnSessionChange)
	session.Subscribe(s.onSessionChange)
	return s
}

// Start は起動時の読み戻し（保存済みセッション・匿名カート）。
// 起動時の復元はログイン遷移ではないのでマージしない。
func (s *Storefront) Start(ctx context.Context) error {
	st := s.session.Restore(ctx)
	lines := s.anon.Get(ctx)

	s.logger.Info("storefront started",
		zap.String("session", string(st.Status())),
		zap.Int("anonymous_lines", len(lines)),
	)

	if !st.Authenticated() {
		return nil
	}
	return s.Refresh(ctx)
}

func (s *Storefront) Session() model.SessionState {
	return s.session.State()
}

// AddToCart はカートに追加する。
// 匿名なら商品を引いて価格をスナップショットし、ローカルに保存する。
func (s *Storefront) AddToCart(ctx context.Context, productID string, quantity int64) error {
	if err := s.validator.ValidateAddToCart(productID, quantity); err != nil {
		return classify(err)
	}

	if s.session.State().Authenticated() {
		if err := s.carts.AddItem(ctx, productID, quantity, ""); err != nil {
			return s.remoteFailed(ctx, err, "could not add the item to your cart")
		}
		return nil
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return s.remoteFailed(ctx, err, "could not load the product")
	}

	line := model.CartLine{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: p.Price,
		Name:      p.Name,
		ImageRef:  p.ImageRef,
		Variant:   p.Size,
	}
	if err := s.anon.Add(ctx, line); err != nil {
		return classify(err)
	}
	return nil
}

// RemoveLocalAt はローカルのindex番目の明細を消す。範囲外はエラーにしない。
func (s *Storefront) RemoveLocalAt(ctx context.Context, index int) error {
	s.anon.RemoveAt(ctx, index)
	return nil
}

// RemoveLocalProduct はローカルの商品の明細を消す。無ければ何もしない。
func (s *Storefront) RemoveLocalProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return classify(ErrInvalidProduct)
	}
	s.anon.RemoveProduct(ctx, productID)
	return nil
}

// RemoveServerItem はサーバー側の明細（item_id）を消す。
func (s *Storefront) RemoveServerItem(ctx context.Context, itemID string) error {
	if !s.session.State().Authenticated() {
		return classify(ErrNotAuthenticated)
	}
	if err := s.carts.RemoveItem(ctx, itemID); err != nil {
		return s.remoteFailed(ctx, err, "could not remove the item from your cart")
	}
	return nil
}

// Refresh はサーバー側カートを取り直す（匿名なら何もしない）。
func (s *Storefront) Refresh(ctx context.Context) error {
	if !s.session.State().Authenticated() {
		return nil
	}
	if _, err := s.carts.Fetch(ctx); err != nil {
		return s.remoteFailed(ctx, err, "could not load your cart")
	}
	return nil
}

// View は表示用のカート。リモートは呼ばない。
func (s *Storefront) View(ctx context.Context) CartView {
	st := s.session.State()
	anon := s.anon.Get(ctx)

	var server []model.AuthCartItem
	if st.Authenticated() {
		if cart, ok := s.carts.Cached(); ok {
			server = cart.Items
		}
	}

	lines := Combine(anon, server, st)
	return CartView{
		Session:     st.Status(),
		Lines:       lines,
		Total:       Total(lines),
		FetchStatus: s.carts.FetchState().Status(),
	}
}

// Login はメールアドレスとパスワードでログインする。
func (s *Storefront) Login(ctx context.Context, email string, password string) (LoginResult, error) {
	if err := s.validator.ValidateLogin(email, password); err != nil {
		return LoginResult{}, classify(err)
	}

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.notices.Notify(NoticeError, "login failed")
		return LoginResult{}, classify(err)
	}
	return s.signIn(ctx, token)
}

// VerifyOTP はワンタイムコードでログインする。
func (s *Storefront) VerifyOTP(ctx context.Context, phone string, code string) (LoginResult, error) {
	if err := s.validator.ValidateOTP(phone, code); err != nil {
		return LoginResult{}, classify(err)
	}

	token, err := s.auth.VerifyOTP(ctx, phone, code)
	if err != nil {
		s.notices.Notify(NoticeError, "verification failed")
		return LoginResult{}, classify(err)
	}
	return s.signIn(ctx, token)
}

func (s *Storefront) Logout(ctx context.Context) error {
	return s.session.SignOut(ctx)
}

// マージは呼び出し元が待つのをやめても最後まで実行する。
func (s *Storefront) signIn(ctx context.Context, token string) (LoginResult, error) {
	task := StartTask(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.session.SignIn(ctx, token)
	})

	_, err := task.Wait(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		task.Discard()
		return LoginResult{}, err
	}

	var me *MergeError
	switch {
	case err == nil:
	case errors.As(err, &me):
		//ログインは成立している。残りは次のログインで送る
		s.notices.Notify(NoticeError, "some items could not be moved to your account cart; they are kept locally")
	default:
		return LoginResult{}, classify(err)
	}

	return LoginResult{
		Session:      s.session.State().Status(),
		PendingLines: len(s.anon.Get(ctx)),
	}, nil
}

func (s *Storefront) onSessionChange(ctx context.Context, t SessionTransition) error {
	if !t.To.Authenticated() {
		s.carts.Reset()
		return nil
	}
	if t.SignedIn() && s.carts.FetchState().Status() != model.OpSucceeded {
		if _, err := s.carts.Fetch(ctx); err != nil {
			s.notices.Notify(NoticeError, "could not load your cart")
		}
	}
	return nil
}

// リモート失敗を通知に変える。401なら強制ログアウト。
func (s *Storefront) remoteFailed(ctx context.Context, err error, message string) error {
	if errors.Is(err, repo.ErrUnauthorized) {
		if serr := s.session.ForceSignOut(ctx); serr != nil {
			s.logger.Warn("forced sign out observers failed", zap.Error(serr))
		}
		s.notices.Notify(NoticeError, "your session has expired, please log in again")
		return classify(err)
	}

	s.notices.Notify(NoticeError, message)
	return classify(err)
}
