package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// SubscriptionPlan is a catalog entry for a named subscription tier. Prices
// are in the smallest currency unit so amount comparisons stay exact.
type SubscriptionPlan struct {
	ID             uint               `gorm:"primaryKey" json:"id"`
	Name           string             `gorm:"type:varchar(50);uniqueIndex;not null" json:"name" validate:"required,oneof='Student Plan' 'Work Plan' 'Elite Plan' 'Demo1 Plan'"`
	Description    string             `gorm:"type:text" json:"description"`
	MonthlyPrice   int64              `gorm:"not null;default:0" json:"monthlyPrice" validate:"gte=0"`
	YearlyPrice    int64              `gorm:"not null;default:0" json:"yearlyPrice" validate:"gte=0"`
	IsMonthly      bool               `gorm:"default:false" json:"isMonthly"`
	IsYearly       bool               `gorm:"default:false" json:"isYearly"`
	AllowedContent []PlanContentGrant `gorm:"foreignKey:SubscriptionPlanID" json:"allowedContent,omitempty"`
	CreatedAt      time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *SubscriptionPlan) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// Allows reports whether the plan covers the given content type name.
func (p *SubscriptionPlan) Allows(contentType string) bool {
	for _, grant := range p.AllowedContent {
		if grant.ContentType == contentType {
			return true
		}
	}
	return false
}

// PlanContentGrant is one content-type category a plan unlocks.
type PlanContentGrant struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	SubscriptionPlanID uint      `gorm:"not null;index:ux_plan_content_grants,unique,priority:1" json:"subscriptionPlanId"`
	ContentType        string    `gorm:"type:varchar(20);not null;index:ux_plan_content_grants,unique,priority:2" json:"contentType"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}
