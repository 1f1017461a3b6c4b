package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskboard/internal/apperr"
)

// bindError converts a gin binding failure into a client error carrying the
// first violation as a human readable message.
func bindError(err error) *apperr.Error {
	var violations validator.ValidationErrors
	if errors.As(err, &violations) && len(violations) > 0 {
		return apperr.BadRequest(violationMessage(violations[0]))
	}
	return apperr.BadRequest("invalid request body")
}

func violationMessage(fieldErr validator.FieldError) string {
	field := strings.ToLower(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "min":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be at least %s characters long", field, fieldErr.Param())
		}
		return fmt.Sprintf("%q must be at least %s", field, fieldErr.Param())
	case "max":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fieldErr.Param())
		}
		return fmt.Sprintf("%q must be at most %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
