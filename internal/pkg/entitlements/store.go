package entitlements

import (
	"errors"

	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/app/repository"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/catalog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the GORM-backed GrantStore.
type Store struct {
	db *gorm.DB
}

// NewStore creates a grant store from a GORM DB handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Transaction(fn func(GrantStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetPlan(id uint) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := s.db.Preload("AllowedContent").First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *Store) GetContent(kind catalog.Kind, id uint) (models.ContentItem, error) {
	return repository.NewContentRepository(s.db).GetByKind(kind, id)
}

// SubscriptionForUpdate loads the user's subscription with a row lock so
// concurrent grants for the same user serialize. Returns (nil, nil) when the
// user has no subscription yet.
func (s *Store) SubscriptionForUpdate(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (s *Store) CreateSubscription(sub *models.Subscription) error {
	return s.db.Create(sub).Error
}

func (s *Store) SaveSubscription(sub *models.Subscription) error {
	return s.db.Save(sub).Error
}

func (s *Store) IndividualGrantFor(subscriptionID uint, kind catalog.Kind, contentID uint) (*models.IndividualSubscription, error) {
	var grant models.IndividualSubscription
	err := s.db.Where("subscription_id = ? AND content_type = ? AND content_id = ?",
		subscriptionID, kind.String(), contentID).
		First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &grant, nil
}

func (s *Store) CreateIndividualGrant(grant *models.IndividualSubscription) error {
	return s.db.Create(grant).Error
}

func (s *Store) SaveIndividualGrant(grant *models.IndividualSubscription) error {
	return s.db.Save(grant).Error
}

func (s *Store) MarkUserPremium(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return err
	}
	if user.IsPremium {
		return nil
	}
	return s.db.Model(&user).Update("is_premium", true).Error
}
