package middleware

import (
	"ai-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// LocalLimit holds the validated leaderboard limit.
const LocalLimit = "validated_limit"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	if v == nil {
		v = validation.NewValidator()
	}
	return &ValidationMiddleware{validator: v}
}

// ValidateLimit validates the limit query parameter and stores it under
// LocalLimit.
func (vm *ValidationMiddleware) ValidateLimit(def, max int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, errs := vm.validator.ValidateLimit(c.Query("limit"), def, max)
		if len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}
		c.Locals(LocalLimit, limit)
		return c.Next()
	}
}
