package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/hartantowib/account-service/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate schema-checks a request struct and returns nil or a domain
// validation error listing every field-level violation. Pure; no side effects.
func Validate(req any) error {
	if err := validate.Struct(req); err != nil {
		return formatErrors(err)
	}
	return nil
}

func formatErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ErrInvalidBody(err)
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return domain.ErrValidation(fields)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
