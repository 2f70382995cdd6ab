package model

import "time"

// ローカル永続ストレージの1キー（ブラウザのlocalStorage相当）
type KVEntry struct {
	Key       string    `gorm:"primaryKey;column:storage_key;type:varchar(191)" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
