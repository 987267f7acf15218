package repository

import (
	"log"
	"time"

	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/cache"
	"gorm.io/gorm"
)

const planNamesCacheTTL = 5 * time.Minute

func planNamesCacheKey(contentType string) string {
	return "catalog:plan-names:" + contentType
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a subscription plan repository backed by GORM.
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(plan *models.SubscriptionPlan) error {
	if err := r.db.Create(plan).Error; err != nil {
		return err
	}
	return r.invalidateNameCaches()
}

func (r *planRepository) GetByID(id uint) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := r.db.Preload("AllowedContent").First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) List() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.Preload("AllowedContent").Order("id").Find(&plans).Error
	return plans, err
}

// NamesAllowing returns the names of every plan whose allowed content covers
// the given content type. The list backs the "which plans would unlock this"
// field of access decisions, so it is cached.
func (r *planRepository) NamesAllowing(contentType string) ([]string, error) {
	key := planNamesCacheKey(contentType)
	if names, err := cache.GetStrings(key); err == nil {
		return names, nil
	}

	var names []string
	if err := r.db.Model(&models.SubscriptionPlan{}).
		Joins("JOIN plan_content_grants ON plan_content_grants.subscription_plan_id = subscription_plans.id").
		Where("plan_content_grants.content_type = ?", contentType).
		Order("subscription_plans.id").
		Pluck("subscription_plans.name", &names).Error; err != nil {
		return nil, err
	}

	_ = cache.SetStrings(key, names, planNamesCacheTTL)
	return names, nil
}

func (r *planRepository) Update(plan *models.SubscriptionPlan) error {
	if err := r.db.Save(plan).Error; err != nil {
		return err
	}
	return r.invalidateNameCaches()
}

func (r *planRepository) ReplaceAllowedContent(planID uint, contentTypes []string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subscription_plan_id = ?", planID).
			Delete(&models.PlanContentGrant{}).Error; err != nil {
			return err
		}
		for _, ct := range contentTypes {
			grant := models.PlanContentGrant{SubscriptionPlanID: planID, ContentType: ct}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.invalidateNameCaches()
}

func (r *planRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subscription_plan_id = ?", id).
			Delete(&models.PlanContentGrant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SubscriptionPlan{}, id).Error
	})
	if err != nil {
		return err
	}
	return r.invalidateNameCaches()
}

// invalidateNameCaches drops the cached plan-name list for every content type.
// Invalidation is best effort: a failure leaves stale entries until the TTL
// runs out, so it is logged but never fails the plan write that triggered it.
func (r *planRepository) invalidateNameCaches() error {
	var names []string
	if err := r.db.Model(&models.ContentTypeEntry{}).
		Pluck("content_type", &names).Error; err != nil {
		log.Printf("invalidating plan-name caches: %v", err)
		return nil
	}
	for _, name := range names {
		_ = cache.Delete(planNamesCacheKey(name))
	}
	return nil
}
