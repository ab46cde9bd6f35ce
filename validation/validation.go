package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SaddamHosen42/zap-shift-server/apperrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request type against its validate tags. Failures come
// back as a single InvalidArgument error listing every offending field.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.E(apperrors.ErrInvalidArgument, err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return apperrors.E(apperrors.ErrInvalidArgument, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt", "gte", "lt", "lte":
		return fmt.Sprintf("%s is out of range", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
