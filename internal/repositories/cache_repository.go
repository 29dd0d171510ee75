package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FringeNet/OpenHands/internal/models"
)

// CacheRepository is the injected local-cache capability: a string key/value
// store accessed synchronously and atomically per key.
type CacheRepository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type cacheRepository struct {
	db *gorm.DB
}

func NewCacheRepository(db *gorm.DB) CacheRepository {
	return &cacheRepository{db: db}
}

func (r *cacheRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.CacheEntry
	if err := r.db.WithContext(ctx).First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

func (r *cacheRepository) Set(ctx context.Context, key, value string) error {
	entry := models.CacheEntry{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry).Error
}

func (r *cacheRepository) Remove(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&models.CacheEntry{}, "key = ?", key).Error
}
