package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/apperror"
)

var validate = validator.New()

// parseBody binds the JSON request body into out. Errors surface as a 400 in
// the response envelope.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperror.BadRequest("Invalid request body")
	}
	return nil
}

// validateBody runs struct validation over a parsed request body.
func validateBody(body interface{}) error {
	if err := validate.Struct(body); err != nil {
		errs := []string{}
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				errs = append(errs, fe.Field()+" failed on "+fe.Tag())
			}
		}
		return apperror.BadRequest("Validation failed", errs...)
	}
	return nil
}
