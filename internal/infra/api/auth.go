package api

import (
	"context"
	"errors"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

type accessTokenDTO struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// ログイン系のレスポンス（userは使わない）
type authResponse struct {
	Token accessTokenDTO `json:"token"`
}

var errEmptyToken = errors.New("empty access token")

// POST /auth/login
func (c *Client) Login(ctx context.Context, email string, password string) (string, error) {
	var out authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", requestOptions{}, loginRequest{Email: email, Password: password}, &out); err != nil {
		return "", err
	}
	if out.Token.AccessToken == "" {
		return "", errEmptyToken
	}
	return out.Token.AccessToken, nil
}

// POST /auth/verify-otp
func (c *Client) VerifyOTP(ctx context.Context, phone string, code string) (string, error) {
	var out authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/verify-otp", requestOptions{}, verifyOTPRequest{Phone: phone, OTP: code}, &out); err != nil {
		return "", err
	}
	if out.Token.AccessToken == "" {
		return "", errEmptyToken
	}
	return out.Token.AccessToken, nil
}
