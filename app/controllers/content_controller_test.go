package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/catalog"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/entitlements"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/respond"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubEntitlementRepo struct {
	user    *models.User
	content models.ContentItem
}

func (s *stubEntitlementRepo) GetUser(id uint) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubEntitlementRepo) GetContent(kind catalog.Kind, id uint) (models.ContentItem, error) {
	if s.content == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.content, nil
}

func (s *stubEntitlementRepo) ValidContentTypeNames() ([]string, error) {
	return catalog.AllNames(), nil
}

func (s *stubEntitlementRepo) HasActiveIndividualGrant(userID uint, kind catalog.Kind, contentID uint, now time.Time) (bool, error) {
	return false, nil
}

func (s *stubEntitlementRepo) ActivePlanSubscription(userID uint, now time.Time) (*models.Subscription, error) {
	return nil, nil
}

func (s *stubEntitlementRepo) PlanNamesAllowing(kind catalog.Kind) ([]string, error) {
	return []string{"Student Plan"}, nil
}

func newVerifyAccessApp(repo *stubEntitlementRepo) *fiber.App {
	cc := NewContentController(entitlements.NewResolver(repo), nil)
	app := fiber.New()
	app.Post("/verify-access", cc.HandleVerifyAccess)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestHandleVerifyAccessFreeContent(t *testing.T) {
	repo := &stubEntitlementRepo{
		user:    &models.User{ID: 1},
		content: &models.Course{ID: 5, IsFree: true},
	}
	app := newVerifyAccessApp(repo)

	resp := postJSON(t, app, "/verify-access", `{"userId":1,"contentType":"Course","contentId":5}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env respond.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, respond.StatusSuccess, env.Status)
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.Equal(t, "Content is free to access", env.Message)

	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var decision entitlements.AccessDecision
	require.NoError(t, json.Unmarshal(data, &decision))
	assert.True(t, decision.IsUnlock)
	assert.True(t, decision.ShowAds)
	assert.Equal(t, []string{"Student Plan"}, decision.SubscriptionPlans)
}

func TestHandleVerifyAccessUserNotFound(t *testing.T) {
	repo := &stubEntitlementRepo{content: &models.Course{ID: 5}}
	app := newVerifyAccessApp(repo)

	resp := postJSON(t, app, "/verify-access", `{"userId":9,"contentType":"Course","contentId":5}`)
	// Logical failures still travel as HTTP 200.
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env respond.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, respond.StatusFailure, env.Status)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
	assert.Equal(t, "User not found", env.Message)
}

func TestHandleVerifyAccessInvalidType(t *testing.T) {
	repo := &stubEntitlementRepo{user: &models.User{ID: 1}}
	app := newVerifyAccessApp(repo)

	resp := postJSON(t, app, "/verify-access", `{"userId":1,"contentType":"Video","contentId":5}`)

	var env respond.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, http.StatusBadRequest, env.StatusCode)
	assert.Contains(t, env.Message, "Invalid content type")
	assert.Contains(t, env.Message, "Course")
}

func TestHandleVerifyAccessMalformedBody(t *testing.T) {
	repo := &stubEntitlementRepo{}
	app := newVerifyAccessApp(repo)

	resp := postJSON(t, app, "/verify-access", `{not json`)

	var env respond.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, http.StatusBadRequest, env.StatusCode)
}
