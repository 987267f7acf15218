package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/learnhub-io/learnhub-backend/app/repository"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/apperror"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/catalog"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/entitlements"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/respond"
	"gorm.io/gorm"
)

// ContentController answers access questions about content items.
type ContentController struct {
	resolver *entitlements.Resolver
	content  repository.ContentRepository
}

func NewContentController(resolver *entitlements.Resolver, content repository.ContentRepository) *ContentController {
	return &ContentController{resolver: resolver, content: content}
}

type verifyAccessRequest struct {
	UserID      uint   `json:"userId"`
	ContentType string `json:"contentType"`
	ContentID   uint   `json:"contentId"`
}

// HandleVerifyAccess resolves whether the user may open the given content item
// and returns the full access decision.
func (cc *ContentController) HandleVerifyAccess(c *fiber.Ctx) error {
	var req verifyAccessRequest
	if err := parseBody(c, &req); err != nil {
		return respond.Error(c, err)
	}

	decision, err := cc.resolver.Resolve(req.UserID, req.ContentType, req.ContentID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, decision.Message, decision)
}

// HandleGetContent returns a content item with the caller's access decision
// embedded, so clients render detail pages from one round trip.
func (cc *ContentController) HandleGetContent(c *fiber.Ctx) error {
	kind, err := catalog.Parse(c.Params("type"))
	if err != nil {
		return respond.Error(c, apperror.BadRequest("Invalid content type"))
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respond.Error(c, apperror.BadRequest("Invalid content id"))
	}
	userID := uint(c.QueryInt("userId"))

	item, err := cc.content.GetByKind(kind, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respond.Error(c, apperror.NotFound(fmt.Sprintf("%s not found", kind)))
		}
		return respond.Error(c, err)
	}

	payload := fiber.Map{"content": item}
	if userID != 0 {
		decision, err := cc.resolver.Resolve(userID, kind.String(), uint(id))
		if err != nil {
			return respond.Error(c, err)
		}
		payload["access"] = decision
	}
	return respond.OK(c, "Content fetched successfully", payload)
}
