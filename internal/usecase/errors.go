package usecase

import (
	"errors"
	"fmt"
	"net/http"

	repo "storefront/internal/repository"
)

var (
	// 入力が不正（email形式・OTPなど）
	ErrInvalidInput = errors.New("invalid input")
	// 数量は1以上
	ErrInvalidQuantity = errors.New("invalid quantity")
	// product_id が空
	ErrInvalidProduct = errors.New("invalid product")
	// 認証済みでないと使えない操作
	ErrNotAuthenticated = errors.New("not authenticated")
	// トークンが空・期限切れ
	ErrInvalidToken = errors.New("invalid token")
)

// 画面（ローカルHTTP・CLI）に返すエラー
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 失敗をユーザー向けのHTTPErrorに変換する（元のerrはUnwrapで辿れる）。
func classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}

	wrap := func(status int, msg string) error {
		return &HTTPError{Status: status, Message: msg, Err: err}
	}

	switch {
	case errors.Is(err, ErrInvalidQuantity):
		return wrap(http.StatusBadRequest, "invalid quantity")
	case errors.Is(err, ErrInvalidProduct):
		return wrap(http.StatusBadRequest, "invalid product_id")
	case errors.Is(err, ErrInvalidInput):
		return wrap(http.StatusBadRequest, "invalid input")
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrNotAuthenticated), errors.Is(err, repo.ErrUnauthorized):
		return wrap(http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, repo.ErrNotFound):
		return wrap(http.StatusNotFound, "not found")
	}

	var me *MergeError
	if errors.As(err, &me) {
		return wrap(http.StatusAccepted, me.Error())
	}

	if re, ok := repo.AsRemoteError(err); ok {
		if re.Status >= 400 && re.Status < 500 {
			return wrap(re.Status, re.Message)
		}
		return wrap(http.StatusBadGateway, "storefront api error")
	}

	//通信失敗・タイムアウトなど
	return wrap(http.StatusServiceUnavailable, "storefront api unavailable")
}
