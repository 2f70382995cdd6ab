package repository

import "context"

// 認証エンドポイント。成功したらアクセストークンを返す。
type AuthRepository interface {
	Login(ctx context.Context, email string, password string) (string, error)
	VerifyOTP(ctx context.Context, phone string, code string) (string, error)
}
