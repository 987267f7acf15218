package repository

import (
	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/catalog"
	"gorm.io/gorm"
)

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates the generic content accessor. The switch is
// exhaustive over catalog.Kind; adding a kind fails here at compile review
// rather than at request time.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) GetByKind(kind catalog.Kind, id uint) (models.ContentItem, error) {
	switch kind {
	case catalog.KindCourse:
		var m models.Course
		if err := r.db.First(&m, id).Error; err != nil {
			return nil, err
		}
		return &m, nil
	case catalog.KindPathway:
		var m models.Pathway
		if err := r.db.First(&m, id).Error; err != nil {
			return nil, err
		}
		return &m, nil
	case catalog.KindQuizModule:
		var m models.QuizModule
		if err := r.db.First(&m, id).Error; err != nil {
			return nil, err
		}
		return &m, nil
	case catalog.KindEvent:
		var m models.Event
		if err := r.db.First(&m, id).Error; err != nil {
			return nil, err
		}
		return &m, nil
	case catalog.KindPodcast:
		var m models.Podcast
		if err := r.db.First(&m, id).Error; err != nil {
			return nil, err
		}
		return &m, nil
	default:
		return nil, catalog.ErrUnknownKind
	}
}
