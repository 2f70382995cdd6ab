package repository

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound = errors.New("not found")
	// 401（トークン失効・強制ログアウト）
	ErrUnauthorized = errors.New("unauthorized")
)

// リモートAPIが2xx以外を返した
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// 401/404 は番兵エラーとしても判定できる
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

func AsRemoteError(err error) (*RemoteError, bool) {
	var re *RemoteError
	ok := errors.As(err, &re)
	return re, ok
}
