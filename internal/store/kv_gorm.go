package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// GormKV stores each key as a row of store_entries. Works on any gorm
// dialect; we run it on sqlite (local file) and postgres.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

func (r *GormKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry models.StoreEntry
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(entry.Value), true, nil
}

func (r *GormKV) Set(ctx context.Context, key string, value []byte) error {
	entry := models.StoreEntry{
		Key:   key,
		Value: string(value),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (r *GormKV) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&models.StoreEntry{}).Error
}

// Compile-time check
var _ KV = (*GormKV)(nil)
