package repository

import (
	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/catalog"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// ContentRepository resolves a (kind, id) pair to the concrete content row.
type ContentRepository interface {
	GetByKind(kind catalog.Kind, id uint) (models.ContentItem, error)
}

// ContentTypeRepository exposes the live content-type catalog.
type ContentTypeRepository interface {
	ListNames() ([]string, error)
	Seed(names []string) error
}

// PlanRepository defines the interface for subscription plan catalog operations
type PlanRepository interface {
	Create(plan *models.SubscriptionPlan) error
	GetByID(id uint) (*models.SubscriptionPlan, error)
	List() ([]models.SubscriptionPlan, error)
	NamesAllowing(contentType string) ([]string, error)
	Update(plan *models.SubscriptionPlan) error
	ReplaceAllowedContent(planID uint, contentTypes []string) error
	Delete(id uint) error
}

// PaymentRepository defines the interface for the payment ledger
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	ListByUser(userID uint, offset, limit int) ([]models.Payment, error)
}

// FCMTokenRepository defines the interface for push token storage
type FCMTokenRepository interface {
	Save(token *models.FCMToken) error
	ListTokensByUser(userID uint) ([]string, error)
	DeleteToken(token string) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Content     ContentRepository
	ContentType ContentTypeRepository
	Plan        PlanRepository
	Payment     PaymentRepository
	FCMToken    FCMTokenRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Content:     NewContentRepository(db),
		ContentType: NewContentTypeRepository(db),
		Plan:        NewPlanRepository(db),
		Payment:     NewPaymentRepository(db),
		FCMToken:    NewFCMTokenRepository(db),
	}
}
