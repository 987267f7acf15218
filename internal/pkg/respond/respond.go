package respond

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/apperror"
)

// Outcome values clients branch on in the envelope's status field.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Envelope is the body every API response uses. Clients read the outcome from
// Status and StatusCode inside the body; the HTTP transport status is always
// 200 so that mobile clients with strict HTTP error interceptors still get
// the payload.
type Envelope struct {
	Status     string      `json:"status"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	StatusCode int         `json:"statusCode"`
	Errors     []string    `json:"errors,omitempty"`
}

// OK writes a success envelope.
func OK(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Status:     StatusSuccess,
		Message:    message,
		Data:       data,
		StatusCode: fiber.StatusOK,
	})
}

// Error writes a failure envelope. Application errors carry their own status
// code and detail list; anything else is reported as a 500 without leaking
// internals.
func Error(c *fiber.Ctx, err error) error {
	statusCode := apperror.StatusOf(err)
	message := "Internal server error"
	var errs []string
	if appErr, ok := apperror.As(err); ok {
		message = appErr.Message
		errs = appErr.Errs
	}
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Status:     StatusFailure,
		Message:    message,
		StatusCode: statusCode,
		Errors:     errs,
	})
}
