package payments

import (
	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/entitlements"
	"gorm.io/gorm"
)

// Repository is the DB surface reconciliation needs: the shared entitlement
// grant store plus the append-only payment ledger.
type Repository interface {
	entitlements.GrantStore
	CreatePayment(payment *models.Payment) error
}

type gormRepository struct {
	*entitlements.Store
	db *gorm.DB
}

// NewRepository creates a payments repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{Store: entitlements.NewStore(db), db: db}
}

func (r *gormRepository) CreatePayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}
