package models

import (
	"testing"
	"time"
)

func TestSubscriptionHasActivePlan(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	planID := uint(7)
	future := now.AddDate(0, 1, 0)
	past := now.AddDate(0, -1, 0)

	tests := []struct {
		name string
		sub  Subscription
		want bool
	}{
		{
			name: "active with future end",
			sub:  Subscription{PlanTypeID: &planID, PlanStatus: SubscriptionStatusActive, PlanEndDate: &future},
			want: true,
		},
		{
			name: "no plan",
			sub:  Subscription{PlanStatus: SubscriptionStatusActive, PlanEndDate: &future},
		},
		{
			name: "expired status",
			sub:  Subscription{PlanTypeID: &planID, PlanStatus: SubscriptionStatusExpired, PlanEndDate: &future},
		},
		{
			name: "past end date",
			sub:  Subscription{PlanTypeID: &planID, PlanStatus: SubscriptionStatusActive, PlanEndDate: &past},
		},
		{
			name: "no end date",
			sub:  Subscription{PlanTypeID: &planID, PlanStatus: SubscriptionStatusActive},
		},
	}
	for _, tt := range tests {
		if got := tt.sub.HasActivePlan(now); got != tt.want {
			t.Fatalf("%s: HasActivePlan = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIndividualSubscriptionIsActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	active := IndividualSubscription{Status: SubscriptionStatusActive, EndDate: now.AddDate(0, 0, 1)}
	if !active.IsActive(now) {
		t.Fatalf("expected active grant")
	}

	expiredStatus := IndividualSubscription{Status: SubscriptionStatusExpired, EndDate: now.AddDate(0, 0, 1)}
	if expiredStatus.IsActive(now) {
		t.Fatalf("expired status must not be active")
	}

	pastEnd := IndividualSubscription{Status: SubscriptionStatusActive, EndDate: now.AddDate(0, 0, -1)}
	if pastEnd.IsActive(now) {
		t.Fatalf("past end date must not be active")
	}

	boundary := IndividualSubscription{Status: SubscriptionStatusActive, EndDate: now}
	if boundary.IsActive(now) {
		t.Fatalf("a grant ending exactly now is no longer active")
	}
}

func TestPlanAllows(t *testing.T) {
	plan := SubscriptionPlan{
		AllowedContent: []PlanContentGrant{
			{ContentType: "Course"},
			{ContentType: "Pathway"},
		},
	}
	if !plan.Allows("Course") {
		t.Fatalf("expected Course to be allowed")
	}
	if plan.Allows("Podcast") {
		t.Fatalf("expected Podcast to be denied")
	}
}
