package entitlements

import (
	"errors"
	"testing"
	"time"

	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/catalog"
	"gorm.io/gorm"
)

// fakeStore is an in-memory GrantStore. Transaction snapshots the state on
// entry and restores it when the callback errors, mirroring a rollback.
type fakeStore struct {
	users  map[uint]*models.User
	plans  map[uint]*models.SubscriptionPlan
	subs   map[uint]*models.Subscription
	grants []*models.IndividualSubscription
	nextID uint

	failMarkPremium bool
	failSaveGrant   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[uint]*models.User{},
		plans:  map[uint]*models.SubscriptionPlan{},
		subs:   map[uint]*models.Subscription{},
		nextID: 100,
	}
}

func (f *fakeStore) Transaction(fn func(GrantStore) error) error {
	users, subs, grants := f.snapshot()
	if err := fn(f); err != nil {
		f.users, f.subs, f.grants = users, subs, grants
		return err
	}
	return nil
}

func (f *fakeStore) snapshot() (map[uint]*models.User, map[uint]*models.Subscription, []*models.IndividualSubscription) {
	users := make(map[uint]*models.User, len(f.users))
	for id, u := range f.users {
		cp := *u
		users[id] = &cp
	}
	subs := make(map[uint]*models.Subscription, len(f.subs))
	for id, s := range f.subs {
		cp := *s
		subs[id] = &cp
	}
	grants := make([]*models.IndividualSubscription, 0, len(f.grants))
	for _, g := range f.grants {
		cp := *g
		grants = append(grants, &cp)
	}
	return users, subs, grants
}

func (f *fakeStore) GetUser(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeStore) GetPlan(id uint) (*models.SubscriptionPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeStore) GetContent(kind catalog.Kind, id uint) (models.ContentItem, error) {
	return &models.Course{ID: id, Title: "stub", Price: 49900}, nil
}

func (f *fakeStore) SubscriptionForUpdate(userID uint) (*models.Subscription, error) {
	for _, s := range f.subs {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateSubscription(sub *models.Subscription) error {
	f.nextID++
	sub.ID = f.nextID
	f.subs[sub.ID] = sub
	return nil
}

func (f *fakeStore) SaveSubscription(sub *models.Subscription) error {
	f.subs[sub.ID] = sub
	return nil
}

func (f *fakeStore) IndividualGrantFor(subscriptionID uint, kind catalog.Kind, contentID uint) (*models.IndividualSubscription, error) {
	for _, g := range f.grants {
		if g.SubscriptionID == subscriptionID && g.ContentType == kind.String() && g.ContentID == contentID {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateIndividualGrant(grant *models.IndividualSubscription) error {
	f.nextID++
	grant.ID = f.nextID
	f.grants = append(f.grants, grant)
	return nil
}

func (f *fakeStore) SaveIndividualGrant(grant *models.IndividualSubscription) error {
	if f.failSaveGrant {
		return errors.New("save grant failed")
	}
	return nil
}

func (f *fakeStore) MarkUserPremium(userID uint) error {
	if f.failMarkPremium {
		return errors.New("mark premium failed")
	}
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsPremium = true
	return nil
}

func TestGrantPlanCreatesSubscription(t *testing.T) {
	store := newFakeStore()
	store.users[1] = &models.User{ID: 1}
	store.plans[7] = &models.SubscriptionPlan{ID: 7, Name: "Student Plan"}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := now.AddDate(0, 1, 0)

	sub, err := GrantPlan(store, 1, 7, now, end, false)
	if err != nil {
		t.Fatalf("GrantPlan: %v", err)
	}
	if sub.PlanTypeID == nil || *sub.PlanTypeID != 7 {
		t.Fatalf("expected plan 7, got %v", sub.PlanTypeID)
	}
	if sub.PlanStatus != models.SubscriptionStatusActive {
		t.Fatalf("expected active plan status, got %q", sub.PlanStatus)
	}
	if sub.PlanEndDate == nil || !sub.PlanEndDate.Equal(end) {
		t.Fatalf("expected end %v, got %v", end, sub.PlanEndDate)
	}
	if sub.GrantedByAdmin {
		t.Fatalf("payment grant must not mark GrantedByAdmin")
	}
	if !store.users[1].IsPremium {
		t.Fatalf("expected user to be marked premium")
	}
}

func TestGrantPlanOverwritesExistingPlan(t *testing.T) {
	store := newFakeStore()
	store.users[1] = &models.User{ID: 1, IsPremium: true}

	oldPlan := uint(7)
	oldEnd := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.subs[50] = &models.Subscription{
		ID: 50, UserID: 1,
		PlanTypeID:  &oldPlan,
		PlanEndDate: &oldEnd,
		PlanStatus:  models.SubscriptionStatusExpired,
	}

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := now.AddDate(1, 0, 0)
	sub, err := GrantPlan(store, 1, 9, now, end, false)
	if err != nil {
		t.Fatalf("GrantPlan: %v", err)
	}
	if sub.ID != 50 {
		t.Fatalf("expected the existing subscription to be reused, got id %d", sub.ID)
	}
	if *sub.PlanTypeID != 9 {
		t.Fatalf("expected plan 9, got %d", *sub.PlanTypeID)
	}
	if sub.PlanStatus != models.SubscriptionStatusActive {
		t.Fatalf("expected regrant to reactivate, got %q", sub.PlanStatus)
	}
	if !sub.PlanEndDate.Equal(end) {
		t.Fatalf("expected end %v, got %v", end, sub.PlanEndDate)
	}
}

func TestGrantPlanByAdminSetsFlag(t *testing.T) {
	store := newFakeStore()
	store.users[1] = &models.User{ID: 1}

	now := time.Now()
	sub, err := GrantPlan(store, 1, 7, now, now.AddDate(0, 0, 30), true)
	if err != nil {
		t.Fatalf("GrantPlan: %v", err)
	}
	if !sub.GrantedByAdmin {
		t.Fatalf("expected GrantedByAdmin to be set")
	}
}

func TestGrantIndividualCreatesGrant(t *testing.T) {
	store := newFakeStore()
	store.users[1] = &models.User{ID: 1}

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := LifetimeEnd(now)

	sub, err := GrantIndividual(store, 1, catalog.KindCourse, 42, now, end, false)
	if err != nil {
		t.Fatalf("GrantIndividual: %v", err)
	}
	if len(store.grants) != 1 {
		t.Fatalf("expected 1 grant, got %d", len(store.grants))
	}
	g := store.grants[0]
	if g.SubscriptionID != sub.ID || g.ContentType != "Course" || g.ContentID != 42 {
		t.Fatalf("unexpected grant row: %+v", g)
	}
	if g.Status != models.SubscriptionStatusActive {
		t.Fatalf("expected active grant, got %q", g.Status)
	}
	if !g.EndDate.Equal(now.AddDate(100, 0, 0)) {
		t.Fatalf("expected lifetime end a century out, got %v", g.EndDate)
	}
	if store.users[1].IsPremium {
		t.Fatalf("individual grants must not mark the user premium")
	}
}

func TestGrantIndividualRenewsInPlace(t *testing.T) {
	store := newFakeStore()
	store.users[1] = &models.User{ID: 1}
	store.subs[50] = &models.Subscription{ID: 50, UserID: 1}
	store.grants = append(store.grants, &models.IndividualSubscription{
		ID: 60, SubscriptionID: 50, ContentType: "Course", ContentID: 42,
		StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:    models.SubscriptionStatusExpired,
	})

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := GrantIndividual(store, 1, catalog.KindCourse, 42, now, LifetimeEnd(now), false); err != nil {
		t.Fatalf("GrantIndividual: %v", err)
	}
	if len(store.grants) != 1 {
		t.Fatalf("regrant must renew the existing row, got %d rows", len(store.grants))
	}
	g := store.grants[0]
	if g.ID != 60 {
		t.Fatalf("expected existing row to be reused")
	}
	if g.Status != models.SubscriptionStatusActive {
		t.Fatalf("expected expired grant to be reactivated, got %q", g.Status)
	}
	if !g.StartDate.Equal(now) {
		t.Fatalf("expected renewed start %v, got %v", now, g.StartDate)
	}
}

func TestGrantPlanPropagatesPremiumFailure(t *testing.T) {
	store := newFakeStore()
	store.users[1] = &models.User{ID: 1}
	store.failMarkPremium = true

	now := time.Now()
	if _, err := GrantPlan(store, 1, 7, now, now.AddDate(0, 1, 0), false); err == nil {
		t.Fatalf("expected error when the user update fails")
	}
}

func TestGrantPlanRollsBackOnPremiumFailure(t *testing.T) {
	store := newFakeStore()
	store.users[1] = &models.User{ID: 1}
	store.failMarkPremium = true

	oldPlan := uint(7)
	oldEnd := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.subs[50] = &models.Subscription{
		ID: 50, UserID: 1,
		PlanTypeID:  &oldPlan,
		PlanEndDate: &oldEnd,
		PlanStatus:  models.SubscriptionStatusExpired,
	}

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	err := store.Transaction(func(tx GrantStore) error {
		_, err := GrantPlan(tx, 1, 9, now, now.AddDate(0, 1, 0), false)
		return err
	})
	if err == nil {
		t.Fatalf("expected the transaction to fail")
	}

	// The half-applied plan write must not survive the failed transaction.
	sub := store.subs[50]
	if sub.PlanTypeID == nil || *sub.PlanTypeID != 7 {
		t.Fatalf("expected the old plan 7 after rollback, got %v", sub.PlanTypeID)
	}
	if sub.PlanStatus != models.SubscriptionStatusExpired {
		t.Fatalf("expected the old expired status after rollback, got %q", sub.PlanStatus)
	}
	if sub.PlanEndDate == nil || !sub.PlanEndDate.Equal(oldEnd) {
		t.Fatalf("expected the old end %v after rollback, got %v", oldEnd, sub.PlanEndDate)
	}
	if store.users[1].IsPremium {
		t.Fatalf("expected isPremium to stay unset after rollback")
	}
}

func TestGrantIndividualRollsBackOnGrantFailure(t *testing.T) {
	store := newFakeStore()
	store.users[1] = &models.User{ID: 1}
	store.subs[50] = &models.Subscription{ID: 50, UserID: 1}
	store.grants = append(store.grants, &models.IndividualSubscription{
		ID: 60, SubscriptionID: 50, ContentType: "Course", ContentID: 42,
		EndDate: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:  models.SubscriptionStatusExpired,
	})
	store.failSaveGrant = true

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	err := store.Transaction(func(tx GrantStore) error {
		_, err := GrantIndividual(tx, 1, catalog.KindCourse, 42, now, LifetimeEnd(now), false)
		return err
	})
	if err == nil {
		t.Fatalf("expected the transaction to fail")
	}

	g := store.grants[0]
	if g.Status != models.SubscriptionStatusExpired {
		t.Fatalf("expected the grant row untouched after rollback, got %q", g.Status)
	}
	if !g.EndDate.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected the old end date after rollback, got %v", g.EndDate)
	}
}
