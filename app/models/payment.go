package models

import (
	"errors"
	"time"
)

const (
	PaymentStatusCreated = "created"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"

	PaymentTypeIndividual   = "individual"
	PaymentTypeSubscription = "subscription"

	DurationMonthly  = "monthly"
	DurationYearly   = "yearly"
	DurationInactive = "inactive"
)

// Payment records one gateway transaction attempt, success or failure. Rows
// are immutable after creation; a retried payment produces a new row.
type Payment struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	UserID            uint   `gorm:"not null;index" json:"userId"`
	RazorpayOrderID   string `gorm:"type:varchar(100);not null;index" json:"razorpay_order_id"`
	RazorpayPaymentID string `gorm:"type:varchar(100);default:''" json:"razorpay_payment_id"`
	RazorpaySignature string `gorm:"type:varchar(191);default:''" json:"razorpay_signature"`
	Amount            int64  `gorm:"not null" json:"amount"`
	Currency          string `gorm:"type:varchar(10);not null;default:'INR'" json:"currency"`
	PaymentStatus     string `gorm:"type:varchar(20);not null;default:'created';index" json:"paymentStatus"`
	FailureReason     string `gorm:"type:text" json:"failureReason"`
	PaymentType       string `gorm:"type:varchar(20);not null" json:"paymentType"`

	// Set iff PaymentType is individual.
	ContentID   *uint  `gorm:"index;default:null" json:"contentId,omitempty"`
	ContentType string `gorm:"type:varchar(20);default:''" json:"contentType,omitempty"`

	// Set iff PaymentType is subscription.
	PlanTypeID         *uint  `gorm:"index;default:null" json:"planTypeId,omitempty"`
	Duration           string `gorm:"type:varchar(20);default:''" json:"duration,omitempty"`
	SubscriptionStatus string `gorm:"type:varchar(20);default:''" json:"subscriptionStatus,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

var (
	errPaymentContentDetails      = errors.New("individual payments require contentId and contentType")
	errPaymentSubscriptionDetails = errors.New("subscription payments require planTypeId and duration")
	errPaymentType                = errors.New("paymentType must be individual or subscription")
)

// Validate enforces the details invariant: content details iff individual,
// subscription details iff subscription.
func (p *Payment) Validate() error {
	switch p.PaymentType {
	case PaymentTypeIndividual:
		if p.ContentID == nil || p.ContentType == "" {
			return errPaymentContentDetails
		}
		if p.PlanTypeID != nil || p.Duration != "" {
			return errPaymentSubscriptionDetails
		}
	case PaymentTypeSubscription:
		if p.PlanTypeID == nil || p.Duration == "" {
			return errPaymentSubscriptionDetails
		}
		if p.ContentID != nil || p.ContentType != "" {
			return errPaymentContentDetails
		}
	default:
		return errPaymentType
	}
	return nil
}
