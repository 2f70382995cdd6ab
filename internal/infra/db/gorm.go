package db

import (
	"strings"

	"storefront/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はローカルストレージ用のDBに接続して *gorm.DB を返す。
// postgres のDSNなら共有DB、それ以外はSQLiteファイルとして開く。
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var dialector gorm.Dialector
	if isPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
	} else {
		if dsn == "" {
			dsn = "storefront.db"
		}
		dialector = sqlite.Open(dsn)
	}

	gormDB, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, err
	}

	if err := gormDB.AutoMigrate(&model.KVEntry{}); err != nil {
		return nil, err
	}
	return gormDB, nil
}

func isPostgresDSN(dsn string) bool {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return true
	}
	// key=value 形式
	return strings.Contains(dsn, "host=") && strings.Contains(dsn, "dbname=")
}
