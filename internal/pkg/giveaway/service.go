package giveaway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/apperror"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/catalog"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/entitlements"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/notify"
	"gorm.io/gorm"
)

// Access types an admin can give away.
const (
	AccessTypePlan       = "plan"
	AccessTypeIndividual = "individual"
)

// Input describes one admin giveaway.
type Input struct {
	UserID     uint
	AccessType string

	// Plan giveaways: which plan, for how many days.
	PlanTypeID uint
	Duration   int

	// Individual giveaways: which content item. The grant is lifetime.
	ContentID   uint
	ContentType string
}

// Result is the outcome reported back to the admin.
type Result struct {
	Subscription     *models.Subscription
	NotificationSent bool
}

// Service grants free access on behalf of an admin and notifies the user.
type Service struct {
	store    entitlements.GrantStore
	notifier notify.Notifier
	now      func() time.Time
}

// NewService creates a giveaway service from injected collaborators.
func NewService(store entitlements.GrantStore, notifier notify.Notifier) *Service {
	return &Service{store: store, notifier: notifier, now: time.Now}
}

// NewServiceFromDB creates a giveaway service backed by GORM.
func NewServiceFromDB(db *gorm.DB, notifier notify.Notifier) *Service {
	return NewService(entitlements.NewStore(db), notifier)
}

// Grant applies the giveaway inside one transaction and then tries to push a
// notification. Notification failure never rolls back or fails the grant.
func (s *Service) Grant(ctx context.Context, in Input) (*Result, error) {
	if in.UserID == 0 || in.AccessType == "" {
		return nil, apperror.BadRequest("UserId and accessType are required")
	}

	if _, err := s.store.GetUser(in.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	now := s.now()
	var (
		sub     *models.Subscription
		message string
	)

	switch in.AccessType {
	case AccessTypePlan:
		if in.PlanTypeID == 0 {
			return nil, apperror.BadRequest("PlanType is required for plan giveaway")
		}
		if in.Duration <= 0 {
			return nil, apperror.BadRequest("Duration must be a positive number of days")
		}
		plan, err := s.store.GetPlan(in.PlanTypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.BadRequest("Invalid plan type")
			}
			return nil, err
		}
		end := now.AddDate(0, 0, in.Duration)
		err = s.store.Transaction(func(tx entitlements.GrantStore) error {
			sub, err = entitlements.GrantPlan(tx, in.UserID, in.PlanTypeID, now, end, true)
			return err
		})
		if err != nil {
			return nil, err
		}
		message = fmt.Sprintf("You have been granted the %s for %d days. Enjoy!", plan.Name, in.Duration)

	case AccessTypeIndividual:
		if in.ContentID == 0 || in.ContentType == "" {
			return nil, apperror.BadRequest("ContentId and contentType are required for individual giveaway")
		}
		kind, err := catalog.Parse(in.ContentType)
		if err != nil {
			return nil, apperror.BadRequest("Invalid content type")
		}
		content, err := s.store.GetContent(kind, in.ContentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.NotFound(fmt.Sprintf("%s not found", kind))
			}
			return nil, err
		}
		err = s.store.Transaction(func(tx entitlements.GrantStore) error {
			sub, err = entitlements.GrantIndividual(tx, in.UserID, kind, in.ContentID, now, entitlements.LifetimeEnd(now), true)
			return err
		})
		if err != nil {
			return nil, err
		}
		message = fmt.Sprintf("You have been granted access to %s. Enjoy!", content.GetTitle())

	default:
		return nil, apperror.BadRequest("Invalid access type")
	}

	sent, err := s.notifier.Send(ctx, in.UserID, "Congratulations!", message, map[string]string{
		"type": "giveaway",
	})
	if err != nil {
		log.Printf("giveaway notification for user %d failed: %v", in.UserID, err)
		sent = false
	}

	return &Result{Subscription: sub, NotificationSent: sent}, nil
}
