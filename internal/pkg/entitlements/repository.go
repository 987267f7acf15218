package entitlements

import (
	"errors"
	"time"

	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/app/repository"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/catalog"
	"gorm.io/gorm"
)

// Repository provides the read-side DB operations used by the access resolver.
type Repository interface {
	GetUser(id uint) (*models.User, error)
	GetContent(kind catalog.Kind, id uint) (models.ContentItem, error)
	ValidContentTypeNames() ([]string, error)
	HasActiveIndividualGrant(userID uint, kind catalog.Kind, contentID uint, now time.Time) (bool, error)
	ActivePlanSubscription(userID uint, now time.Time) (*models.Subscription, error)
	PlanNamesAllowing(kind catalog.Kind) ([]string, error)
}

type gormRepository struct {
	db           *gorm.DB
	users        repository.UserRepository
	contents     repository.ContentRepository
	contentTypes repository.ContentTypeRepository
	plans        repository.PlanRepository
}

// NewRepository creates a resolver repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{
		db:           db,
		users:        repository.NewUserRepository(db),
		contents:     repository.NewContentRepository(db),
		contentTypes: repository.NewContentTypeRepository(db),
		plans:        repository.NewPlanRepository(db),
	}
}

func (r *gormRepository) GetUser(id uint) (*models.User, error) {
	return r.users.GetByID(id)
}

func (r *gormRepository) GetContent(kind catalog.Kind, id uint) (models.ContentItem, error) {
	return r.contents.GetByKind(kind, id)
}

func (r *gormRepository) ValidContentTypeNames() ([]string, error) {
	return r.contentTypes.ListNames()
}

func (r *gormRepository) HasActiveIndividualGrant(userID uint, kind catalog.Kind, contentID uint, now time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.IndividualSubscription{}).
		Joins("JOIN subscriptions ON subscriptions.id = individual_subscriptions.subscription_id").
		Where("subscriptions.user_id = ?", userID).
		Where("individual_subscriptions.content_type = ?", kind.String()).
		Where("individual_subscriptions.content_id = ?", contentID).
		Where("individual_subscriptions.status = ?", models.SubscriptionStatusActive).
		Where("individual_subscriptions.end_date > ?", now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormRepository) ActivePlanSubscription(userID uint, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("PlanType").Preload("PlanType.AllowedContent").
		Where("user_id = ?", userID).
		Where("plan_status = ?", models.SubscriptionStatusActive).
		Where("plan_end_date > ?", now).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) PlanNamesAllowing(kind catalog.Kind) ([]string, error) {
	return r.plans.NamesAllowing(kind.String())
}
