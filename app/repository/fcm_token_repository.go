package repository

import (
	"github.com/learnhub-io/learnhub-backend/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type fcmTokenRepository struct {
	db *gorm.DB
}

// NewFCMTokenRepository creates the push token repository backed by GORM.
func NewFCMTokenRepository(db *gorm.DB) FCMTokenRepository {
	return &fcmTokenRepository{db: db}
}

func (r *fcmTokenRepository) Save(token *models.FCMToken) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "platform", "updated_at"}),
	}).Create(token).Error
}

func (r *fcmTokenRepository) ListTokensByUser(userID uint) ([]string, error) {
	var tokens []string
	err := r.db.Model(&models.FCMToken{}).
		Where("user_id = ?", userID).
		Pluck("token", &tokens).Error
	return tokens, err
}

func (r *fcmTokenRepository) DeleteToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.FCMToken{}).Error
}
