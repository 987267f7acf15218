package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/app/repository"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/apperror"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/middleware"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/respond"
	"gorm.io/gorm"
)

// AuthController handles registration, login and device registration.
type AuthController struct {
	users     repository.UserRepository
	fcmTokens repository.FCMTokenRepository
}

func NewAuthController(users repository.UserRepository, fcmTokens repository.FCMTokenRepository) *AuthController {
	return &AuthController{users: users, fcmTokens: fcmTokens}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister creates an email/password account and issues a token.
func (ac *AuthController) HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := parseBody(c, &req); err != nil {
		return respond.Error(c, err)
	}
	if err := validateBody(req); err != nil {
		return respond.Error(c, err)
	}

	if _, err := ac.users.GetByEmail(req.Email); err == nil {
		return respond.Error(c, apperror.BadRequest("Email already registered"))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return respond.Error(c, err)
	}

	user, err := models.CreateUser(req.Email, req.Password, models.PROVIDER_EMAIL)
	if err != nil {
		return respond.Error(c, apperror.BadRequest(err.Error()))
	}
	if err := ac.users.Create(user); err != nil {
		return respond.Error(c, err)
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		return respond.Error(c, err)
	}

	return respond.OK(c, "User registered successfully", fiber.Map{
		"user":  user,
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verifies credentials and issues a token.
func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return respond.Error(c, err)
	}
	if err := validateBody(req); err != nil {
		return respond.Error(c, err)
	}

	user, err := ac.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respond.Error(c, apperror.Unauthorized("Invalid email or password"))
		}
		return respond.Error(c, err)
	}
	if !user.CheckPassword(req.Password) {
		return respond.Error(c, apperror.Unauthorized("Invalid email or password"))
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		return respond.Error(c, err)
	}

	return respond.OK(c, "Login successful", fiber.Map{
		"user":  user,
		"token": token,
	})
}

type fcmTokenRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform"`
}

// HandleRegisterFCMToken stores a device push token for the caller.
func (ac *AuthController) HandleRegisterFCMToken(c *fiber.Ctx) error {
	var req fcmTokenRequest
	if err := parseBody(c, &req); err != nil {
		return respond.Error(c, err)
	}
	if err := validateBody(req); err != nil {
		return respond.Error(c, err)
	}

	token := &models.FCMToken{
		UserID:   middleware.UserID(c),
		Token:    req.Token,
		Platform: req.Platform,
	}
	if err := ac.fcmTokens.Save(token); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, "Device registered for notifications", nil)
}
