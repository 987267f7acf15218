package models

import "time"

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusExpired   = "expired"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusInactive  = "inactive"
)

// Subscription is the per-user entitlement document: an optional plan state
// plus the user's individual content grants. It is created lazily on the first
// grant, never at registration. The plan fields are overwritten on regrant, so
// at most one plan is meaningful at a time.
type Subscription struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;uniqueIndex" json:"userId"`
	PlanTypeID     *uint      `gorm:"index;default:null" json:"planTypeId,omitempty"`
	PlanStartDate  *time.Time `gorm:"type:timestamp;default:null" json:"planStartDate,omitempty"`
	PlanEndDate    *time.Time `gorm:"type:timestamp;default:null" json:"planEndDate,omitempty"`
	PlanStatus     string     `gorm:"type:varchar(20);not null;default:'inactive'" json:"planStatus"`
	GrantedByAdmin bool       `gorm:"default:false" json:"grantedByAdmin"`

	PlanType                *SubscriptionPlan        `gorm:"foreignKey:PlanTypeID" json:"planType,omitempty"`
	IndividualSubscriptions []IndividualSubscription `gorm:"foreignKey:SubscriptionID" json:"individualSubscriptions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// HasActivePlan reports whether the plan state entitles the user at the given
// instant.
func (s *Subscription) HasActivePlan(now time.Time) bool {
	return s.PlanTypeID != nil &&
		s.PlanStatus == SubscriptionStatusActive &&
		s.PlanEndDate != nil && s.PlanEndDate.After(now)
}

// IndividualSubscription is one content-scoped entitlement. The unique index
// enforces at most one row per (subscription, contentType, contentId);
// regranting renews the existing row in place.
type IndividualSubscription struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SubscriptionID uint      `gorm:"not null;index:ux_individual_subs_content,unique,priority:1" json:"subscriptionId"`
	ContentType    string    `gorm:"type:varchar(20);not null;index:ux_individual_subs_content,unique,priority:2" json:"contentType"`
	ContentID      uint      `gorm:"not null;index:ux_individual_subs_content,unique,priority:3" json:"contentId"`
	StartDate      time.Time `gorm:"not null" json:"startDate"`
	EndDate        time.Time `gorm:"not null" json:"endDate"`
	Status         string    `gorm:"type:varchar(20);not null;default:'inactive'" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsActive reports whether the grant entitles the user at the given instant.
func (g *IndividualSubscription) IsActive(now time.Time) bool {
	return g.Status == SubscriptionStatusActive && g.EndDate.After(now)
}
