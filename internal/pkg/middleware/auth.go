package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/apperror"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/env"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/respond"
)

const tokenTTL = 72 * time.Hour

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(env.GetEnv("JWT_SECRET", ""))
}

// GenerateToken issues a signed HS256 token for the user.
func GenerateToken(userID uint, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken validates a signed token and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}
	return claims, nil
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's identity in locals for the handlers behind it.
func RequireAuth(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return respond.Error(c, apperror.Unauthorized("Authorization token is required"))
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return respond.Error(c, apperror.Unauthorized("Authorization token is required"))
	}

	claims, err := ParseToken(parts[1])
	if err != nil {
		return respond.Error(c, err)
	}

	c.Locals("userID", claims.UserID)
	c.Locals("userRole", claims.Role)
	return c.Next()
}

// RequireAdmin must run behind RequireAuth.
func RequireAdmin(c *fiber.Ctx) error {
	role, _ := c.Locals("userRole").(string)
	if role != models.ROLE_ADMIN {
		return respond.Error(c, apperror.Forbidden("Admin access required"))
	}
	return c.Next()
}

// UserID returns the authenticated caller's id, 0 when unauthenticated.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
