package repository

import (
	"time"

	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const contentTypeCacheKey = "catalog:content-types"
const contentTypeCacheTTL = 5 * time.Minute

type contentTypeRepository struct {
	db *gorm.DB
}

// NewContentTypeRepository creates the live content-type catalog accessor.
func NewContentTypeRepository(db *gorm.DB) ContentTypeRepository {
	return &contentTypeRepository{db: db}
}

func (r *contentTypeRepository) ListNames() ([]string, error) {
	if names, err := cache.GetStrings(contentTypeCacheKey); err == nil {
		return names, nil
	}

	var names []string
	if err := r.db.Model(&models.ContentTypeEntry{}).
		Order("content_type").
		Pluck("content_type", &names).Error; err != nil {
		return nil, err
	}

	// Best effort; a cache miss just means the next read hits the database.
	_ = cache.SetStrings(contentTypeCacheKey, names, contentTypeCacheTTL)
	return names, nil
}

func (r *contentTypeRepository) Seed(names []string) error {
	entries := make([]models.ContentTypeEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, models.ContentTypeEntry{ContentType: name})
	}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_type"}},
		DoNothing: true,
	}).Create(&entries).Error; err != nil {
		return err
	}
	return cache.Delete(contentTypeCacheKey)
}
