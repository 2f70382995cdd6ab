package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KVGormRepository struct {
	db *gorm.DB
}

// DI
func NewKVGormRepository(db *gorm.DB) *KVGormRepository {
	return &KVGormRepository{db: db}
}

// キーの値を取得
func (r *KVGormRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.KVEntry

	err := r.db.WithContext(ctx).
		Where("storage_key = ?", key).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry.Value, nil
}

// 値を丸ごと置き換える（無ければ作る）
func (r *KVGormRepository) Put(ctx context.Context, key string, value []byte) error {
	entry := model.KVEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

// キーを削除（無くてもエラーにしない）
func (r *KVGormRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("storage_key = ?", key).
		Delete(&model.KVEntry{}).Error
}
