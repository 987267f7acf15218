package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/app/repository"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/apperror"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/giveaway"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/respond"
	"gorm.io/gorm"
)

// AdminController handles giveaways and catalog administration.
type AdminController struct {
	giveaway     *giveaway.Service
	plans        repository.PlanRepository
	contentTypes repository.ContentTypeRepository
}

func NewAdminController(gs *giveaway.Service, plans repository.PlanRepository, contentTypes repository.ContentTypeRepository) *AdminController {
	return &AdminController{giveaway: gs, plans: plans, contentTypes: contentTypes}
}

type giveAwayRequest struct {
	UserID      uint   `json:"userId"`
	AccessType  string `json:"accessType"`
	PlanTypeID  uint   `json:"planTypeId"`
	Duration    int    `json:"duration"`
	ContentID   uint   `json:"contentId"`
	ContentType string `json:"contentType"`
}

// HandleGiveAway grants a user free access to a plan or a content item.
func (ac *AdminController) HandleGiveAway(c *fiber.Ctx) error {
	var req giveAwayRequest
	if err := parseBody(c, &req); err != nil {
		return respond.Error(c, err)
	}

	result, err := ac.giveaway.Grant(c.Context(), giveaway.Input{
		UserID:      req.UserID,
		AccessType:  req.AccessType,
		PlanTypeID:  req.PlanTypeID,
		Duration:    req.Duration,
		ContentID:   req.ContentID,
		ContentType: req.ContentType,
	})
	if err != nil {
		return respond.Error(c, err)
	}

	return respond.OK(c, "Access granted successfully", fiber.Map{
		"subscription":     result.Subscription,
		"message":          "Access granted successfully",
		"notificationSent": result.NotificationSent,
	})
}

type planRequest struct {
	Name           string   `json:"name" validate:"required"`
	MonthlyPrice   int64    `json:"monthlyPrice"`
	YearlyPrice    int64    `json:"yearlyPrice"`
	IsMonthly      bool     `json:"isMonthly"`
	IsYearly       bool     `json:"isYearly"`
	AllowedContent []string `json:"allowedContent"`
}

// HandleCreatePlan adds a plan to the catalog.
func (ac *AdminController) HandleCreatePlan(c *fiber.Ctx) error {
	var req planRequest
	if err := parseBody(c, &req); err != nil {
		return respond.Error(c, err)
	}
	if err := validateBody(req); err != nil {
		return respond.Error(c, err)
	}

	plan := &models.SubscriptionPlan{
		Name:         req.Name,
		MonthlyPrice: req.MonthlyPrice,
		YearlyPrice:  req.YearlyPrice,
		IsMonthly:    req.IsMonthly,
		IsYearly:     req.IsYearly,
	}
	for _, ct := range req.AllowedContent {
		plan.AllowedContent = append(plan.AllowedContent, models.PlanContentGrant{ContentType: ct})
	}
	if err := plan.Validate(); err != nil {
		return respond.Error(c, apperror.BadRequest(err.Error()))
	}
	if err := ac.plans.Create(plan); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, "Plan created successfully", plan)
}

// HandleUpdatePlan changes a plan's prices, periods and allowed content.
func (ac *AdminController) HandleUpdatePlan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respond.Error(c, apperror.BadRequest("Invalid plan id"))
	}

	var req planRequest
	if err := parseBody(c, &req); err != nil {
		return respond.Error(c, err)
	}
	if err := validateBody(req); err != nil {
		return respond.Error(c, err)
	}

	plan, err := ac.plans.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respond.Error(c, apperror.NotFound("Plan not found"))
		}
		return respond.Error(c, err)
	}

	plan.Name = req.Name
	plan.MonthlyPrice = req.MonthlyPrice
	plan.YearlyPrice = req.YearlyPrice
	plan.IsMonthly = req.IsMonthly
	plan.IsYearly = req.IsYearly
	if err := ac.plans.Update(plan); err != nil {
		return respond.Error(c, err)
	}
	if err := ac.plans.ReplaceAllowedContent(plan.ID, req.AllowedContent); err != nil {
		return respond.Error(c, err)
	}

	updated, err := ac.plans.GetByID(plan.ID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, "Plan updated successfully", updated)
}

// HandleDeletePlan removes a plan from the catalog.
func (ac *AdminController) HandleDeletePlan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respond.Error(c, apperror.BadRequest("Invalid plan id"))
	}
	if _, err := ac.plans.GetByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respond.Error(c, apperror.NotFound("Plan not found"))
		}
		return respond.Error(c, err)
	}
	if err := ac.plans.Delete(uint(id)); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, "Plan deleted successfully", nil)
}

// HandleListContentTypes returns the live content-type catalog.
func (ac *AdminController) HandleListContentTypes(c *fiber.Ctx) error {
	names, err := ac.contentTypes.ListNames()
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, "Content types fetched successfully", names)
}
