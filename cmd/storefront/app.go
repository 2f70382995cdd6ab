package main

import (
	"context"
	"fmt"

	"storefront/internal/config"
	"storefront/internal/infra/api"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"go.uber.org/zap"
)

// 1プロファイル分の部品一式
type app struct {
	storefront *usecase.Storefront
	notices    *usecase.NoticeBoard
	closeDB    func() error
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	//ローカルストレージ
	gormDB, err := db.Connect(cfg.StorageDSN)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	kv := infraRepo.NewKVGormRepository(gormDB)

	//リモートAPI
	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, logger)

	session := usecase.NewSessionLifecycle(kv, cfg.SessionStorageKey, logger)
	anon := usecase.NewAnonymousCartStore(kv, cfg.CartStorageKey, logger)
	carts := usecase.NewAuthenticatedCartService(client, session, logger)
	merger := usecase.NewCartMergeCoordinator(anon, carts, logger)
	notices := usecase.NewNoticeBoard(cfg.NoticeCapacity, logger)

	sf := usecase.NewStorefront(anon, carts, session, merger, client, client, validator.NewInputValidator(), notices, logger)

	//起動時にサーバー側カートが取れなくても続行（通知に残る）
	if err := sf.Start(ctx); err != nil {
		logger.Warn("initial cart fetch failed", zap.Error(err))
	}

	return &app{storefront: sf, notices: notices, closeDB: sqlDB.Close}, nil
}

func (a *app) close() error {
	return a.closeDB()
}
