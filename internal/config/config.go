package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // serve時のポート（8080）

	APIBaseURL  string        // ストアフロントAPIのURL
	HTTPTimeout time.Duration // API呼び出しのタイムアウト

	StorageDSN        string // ローカルストレージ（SQLiteファイル or postgres DSN）
	CartStorageKey    string // 匿名カートを保存するキー
	SessionStorageKey string // アクセストークンを保存するキー

	NoticeCapacity int // 保持する通知の上限

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	timeoutSec, err := atoiDefault("HTTP_TIMEOUT_SECONDS", 10)
	if err != nil {
		return Config{}, err
	}
	noticeCap, err := atoiDefault("NOTICE_CAPACITY", 50)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		APIBaseURL:  os.Getenv("API_BASE_URL"),
		HTTPTimeout: time.Duration(timeoutSec) * time.Second,

		StorageDSN:        getenv("STORAGE_DSN", "storefront.db"),
		CartStorageKey:    getenv("CART_STORAGE_KEY", "anonymous_cart"),
		SessionStorageKey: getenv("SESSION_STORAGE_KEY", "session_token"),

		NoticeCapacity: noticeCap,

		GoEnv: getenv("GO_ENV", "prod"),
	}

	//必須チェック
	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL is required")
	}
	if timeoutSec <= 0 {
		return Config{}, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive")
	}
	if noticeCap <= 0 {
		return Config{}, fmt.Errorf("NOTICE_CAPACITY must be positive")
	}
	if cfg.CartStorageKey == cfg.SessionStorageKey {
		return Config{}, fmt.Errorf("CART_STORAGE_KEY and SESSION_STORAGE_KEY must differ")
	}

	return cfg, nil
}

func (c Config) IsDev() bool {
	return c.GoEnv == "dev"
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
