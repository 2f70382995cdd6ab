package validator

import (
	"fmt"
	"regexp"
	"strings"

	"storefront/internal/usecase"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// E.164っぽい電話番号
	phoneRe = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	otpRe   = regexp.MustCompile(`^[0-9]{4,8}$`)
)

type inputValidator struct{}

// Usecaseは interface を依存注入
func NewInputValidator() usecase.InputValidator {
	return &inputValidator{}
}

// カート追加の入力を検証
func (v *inputValidator) ValidateAddToCart(productID string, quantity int64) error {
	if strings.TrimSpace(productID) == "" {
		return usecase.ErrInvalidProduct
	}
	if quantity < 1 {
		return usecase.ErrInvalidQuantity
	}
	return nil
}

// ログインの入力を検証
func (v *inputValidator) ValidateLogin(email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", usecase.ErrInvalidInput)
	}

	// email形式
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: email format", usecase.ErrInvalidInput)
	}

	return nil
}

// OTP検証の入力を検証
func (v *inputValidator) ValidateOTP(phone string, code string) error {
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")

	if !phoneRe.MatchString(phone) {
		return fmt.Errorf("%w: phone format", usecase.ErrInvalidInput)
	}
	if !otpRe.MatchString(strings.TrimSpace(code)) {
		return fmt.Errorf("%w: otp format", usecase.ErrInvalidInput)
	}
	return nil
}
