package entitlements

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/learnhub-io/learnhub-backend/internal/pkg/apperror"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/catalog"
	"gorm.io/gorm"
)

// Resolver decides whether a user may access a piece of content. It is a pure
// read over the catalog and the entitlement store; the same decision backs
// both the verify-access endpoint and the content-detail endpoints.
type Resolver struct {
	repo Repository
	now  func() time.Time
}

// NewResolver creates a resolver from an injected repository.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo, now: time.Now}
}

// NewResolverFromDB creates a resolver from a GORM DB handle.
func NewResolverFromDB(db *gorm.DB) *Resolver {
	return NewResolver(NewRepository(db))
}

// Resolve evaluates the access rules in fixed precedence: free content, then
// an active individual purchase of this exact item, then an active plan whose
// allowed content covers the type, then locked. The first matching rule wins.
func (r *Resolver) Resolve(userID uint, contentTypeName string, contentID uint) (*AccessDecision, error) {
	if userID == 0 || contentID == 0 || strings.TrimSpace(contentTypeName) == "" {
		return nil, apperror.BadRequest("Missing required fields: userId, contentType, and contentId are required")
	}

	// Validate the type name against the live catalog, not a hardcoded list,
	// so admins can retire types without a deploy.
	validNames, err := r.repo.ValidContentTypeNames()
	if err != nil {
		return nil, err
	}
	if !containsName(validNames, contentTypeName) {
		return nil, apperror.BadRequest(fmt.Sprintf(
			"Invalid content type. Must be one of: %s", strings.Join(validNames, ", ")))
	}

	kind, err := catalog.Parse(contentTypeName)
	if err != nil {
		// In the catalog table but not in the closed enum: a deploy gap.
		return nil, apperror.Internal("Content type model not configured")
	}

	user, err := r.repo.GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	content, err := r.repo.GetContent(kind, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("%s not found", kind))
		}
		return nil, err
	}

	requiredPlans, err := r.repo.PlanNamesAllowing(kind)
	if err != nil {
		return nil, err
	}
	if requiredPlans == nil {
		requiredPlans = []string{}
	}

	now := r.now()

	// Rule 1: free content. An active individual grant for the same item
	// additionally suppresses ads for non-premium users.
	if content.Free() {
		hasGrant, err := r.repo.HasActiveIndividualGrant(userID, kind, contentID, now)
		if err != nil {
			return nil, err
		}
		return &AccessDecision{
			IsUnlock:          true,
			PremiumPrice:      content.GetPrice(),
			ShowAds:           !hasGrant && !user.IsPremium,
			SubscriptionPlans: requiredPlans,
			Message:           "Content is free to access",
		}, nil
	}

	// Rule 2: active individual purchase of this exact item.
	hasGrant, err := r.repo.HasActiveIndividualGrant(userID, kind, contentID, now)
	if err != nil {
		return nil, err
	}
	if hasGrant {
		return &AccessDecision{
			IsUnlock:          true,
			PremiumPrice:      content.GetPrice(),
			ShowAds:           false,
			SubscriptionPlans: requiredPlans,
			AccessType:        AccessTypeIndividual,
			Message:           "Access granted via individual subscription",
		}, nil
	}

	// Rule 3: active plan whose allowed content covers this type. The
	// subscription document is the source of truth here, not the user's
	// isPremium cache.
	sub, err := r.repo.ActivePlanSubscription(userID, now)
	if err != nil {
		return nil, err
	}
	if sub != nil && sub.PlanType != nil && sub.PlanType.Allows(kind.String()) {
		return &AccessDecision{
			IsUnlock:          true,
			PremiumPrice:      content.GetPrice(),
			ShowAds:           false,
			SubscriptionPlans: requiredPlans,
			AccessType:        AccessTypePlan,
			PlanName:          sub.PlanType.Name,
			Message:           fmt.Sprintf("Access granted via %s plan", sub.PlanType.Name),
		}, nil
	}

	// Rule 4: locked. Report the price and the plans that would unlock it.
	return &AccessDecision{
		IsUnlock:          false,
		PremiumPrice:      content.GetPrice(),
		ShowAds:           !user.IsPremium,
		SubscriptionPlans: requiredPlans,
		Message:           "No valid subscription found for this content",
	}, nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
