package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"ai-quiz/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates a request body against its validate tags.
func (v *Validator) Struct(req any) domain.ValidationErrors {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{Field: "body", Message: err.Error()}}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toValidationError(fe))
	}
	return out
}

func toValidationError(fe validator.FieldError) domain.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "max":
		return domain.ValidationError{Field: field, Message: fmt.Sprintf("must be at most %s characters", fe.Param())}
	case "gte", "lte":
		return domain.ValidationError{Field: field, Message: fmt.Sprintf("must be %s %s", fe.Tag(), fe.Param())}
	default:
		return domain.ValidationError{Field: field, Message: fmt.Sprintf("failed %s validation", fe.Tag())}
	}
}

// ValidateLimit parses the leaderboard limit query parameter. An empty value
// yields def; anything outside [1,max] is rejected.
func (v *Validator) ValidateLimit(raw string, def, max int) (int, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("limit", raw)}
	}
	if n < 1 || n > max {
		return 0, domain.ValidationErrors{domain.NewOutOfRangeError("limit", n, 1, max)}
	}
	return n, nil
}
