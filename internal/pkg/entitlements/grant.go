package entitlements

import (
	"time"

	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/catalog"
)

// Individual purchases and giveaways are "lifetime": a century out.
const lifetimeYears = 100

// LifetimeEnd returns the end date used for lifetime grants.
func LifetimeEnd(now time.Time) time.Time {
	return now.AddDate(lifetimeYears, 0, 0)
}

// GrantStore is the write-side interface shared by payment reconciliation and
// the admin giveaway. Both callers wrap their grant in Transaction;
// SubscriptionForUpdate row-locks the user's subscription inside it, so
// concurrent grants for the same user serialize instead of racing the
// find-or-create step.
type GrantStore interface {
	Transaction(fn func(GrantStore) error) error
	GetUser(id uint) (*models.User, error)
	GetPlan(id uint) (*models.SubscriptionPlan, error)
	GetContent(kind catalog.Kind, id uint) (models.ContentItem, error)
	SubscriptionForUpdate(userID uint) (*models.Subscription, error)
	CreateSubscription(sub *models.Subscription) error
	SaveSubscription(sub *models.Subscription) error
	IndividualGrantFor(subscriptionID uint, kind catalog.Kind, contentID uint) (*models.IndividualSubscription, error)
	CreateIndividualGrant(grant *models.IndividualSubscription) error
	SaveIndividualGrant(grant *models.IndividualSubscription) error
	MarkUserPremium(userID uint) error
}

// GrantPlan overwrites the user's plan state with the given plan and period
// and marks the user premium. Must be called inside store.Transaction.
func GrantPlan(store GrantStore, userID, planID uint, start, end time.Time, byAdmin bool) (*models.Subscription, error) {
	sub, err := findOrCreateSubscription(store, userID)
	if err != nil {
		return nil, err
	}

	sub.PlanTypeID = &planID
	sub.PlanStartDate = &start
	sub.PlanEndDate = &end
	sub.PlanStatus = models.SubscriptionStatusActive
	if byAdmin {
		sub.GrantedByAdmin = true
	}
	if err := store.SaveSubscription(sub); err != nil {
		return nil, err
	}

	// isPremium is a cache over the plan state; this is its only writer
	// besides the giveaway path, which also funnels through here.
	if err := store.MarkUserPremium(userID); err != nil {
		return nil, err
	}
	return sub, nil
}

// GrantIndividual grants access to exactly one content item. An existing row
// for the same (contentType, contentId) is renewed in place regardless of its
// status, keeping the one-row-per-item invariant. Must be called inside
// store.Transaction. Individual grants never touch isPremium.
func GrantIndividual(store GrantStore, userID uint, kind catalog.Kind, contentID uint, start, end time.Time, byAdmin bool) (*models.Subscription, error) {
	sub, err := findOrCreateSubscription(store, userID)
	if err != nil {
		return nil, err
	}

	if byAdmin && !sub.GrantedByAdmin {
		sub.GrantedByAdmin = true
		if err := store.SaveSubscription(sub); err != nil {
			return nil, err
		}
	}

	existing, err := store.IndividualGrantFor(sub.ID, kind, contentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.StartDate = start
		existing.EndDate = end
		existing.Status = models.SubscriptionStatusActive
		if err := store.SaveIndividualGrant(existing); err != nil {
			return nil, err
		}
		return sub, nil
	}

	grant := &models.IndividualSubscription{
		SubscriptionID: sub.ID,
		ContentType:    kind.String(),
		ContentID:      contentID,
		StartDate:      start,
		EndDate:        end,
		Status:         models.SubscriptionStatusActive,
	}
	if err := store.CreateIndividualGrant(grant); err != nil {
		return nil, err
	}
	return sub, nil
}

func findOrCreateSubscription(store GrantStore, userID uint) (*models.Subscription, error) {
	sub, err := store.SubscriptionForUpdate(userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		sub = &models.Subscription{UserID: userID, PlanStatus: models.SubscriptionStatusInactive}
		if err := store.CreateSubscription(sub); err != nil {
			return nil, err
		}
	}
	return sub, nil
}
