package usecase

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/mock"
)

// Mocking repositories
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Get(ctx context.Context, token string) (model.AuthCart, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.AuthCart), args.Error(1)
}

func (m *MockCartRepository) Add(ctx context.Context, token string, in repo.AddCartItemInput) error {
	args := m.Called(ctx, token, in)
	return args.Error(0)
}

func (m *MockCartRepository) Remove(ctx context.Context, token string, itemID string) error {
	args := m.Called(ctx, token, itemID)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, productID string) (model.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(model.Product), args.Error(1)
}

type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) Login(ctx context.Context, email string, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthRepository) VerifyOTP(ctx context.Context, phone string, code string) (string, error) {
	args := m.Called(ctx, phone, code)
	return args.String(0), args.Error(1)
}

// マージ元のモック（Clearの呼び出し回数を見る）
type MockAnonymousCart struct {
	mock.Mock
}

func (m *MockAnonymousCart) Get(ctx context.Context) []model.CartLine {
	args := m.Called(ctx)
	return args.Get(0).([]model.CartLine)
}

func (m *MockAnonymousCart) Clear(ctx context.Context) {
	m.Called(ctx)
}

type MockAuthenticatedCart struct {
	mock.Mock
}

func (m *MockAuthenticatedCart) AddItem(ctx context.Context, productID string, quantity int64, idempotencyKey string) error {
	args := m.Called(ctx, productID, quantity, idempotencyKey)
	return args.Error(0)
}

func (m *MockAuthenticatedCart) Fetch(ctx context.Context) (model.AuthCart, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.AuthCart), args.Error(1)
}

// 固定のセッション
type staticSession struct {
	state model.SessionState
}

func (s staticSession) State() model.SessionState { return s.state }

// 常に失敗するストレージ
type brokenKV struct{}

var errDiskFull = errors.New("disk full")

func (brokenKV) Get(ctx context.Context, key string) ([]byte, error) { return nil, errDiskFull }
func (brokenKV) Put(ctx context.Context, key string, value []byte) error {
	return errDiskFull
}
func (brokenKV) Delete(ctx context.Context, key string) error { return errDiskFull }

// Errors for testing
var (
	errNetwork    = errors.New("connection reset")
	errOutOfStock = &repo.RemoteError{Status: 400, Message: "stock exceeded"}
)
