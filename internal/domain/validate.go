package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var subdomainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,61}[a-z0-9]$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()

		// Report JSON field names so messages match the request body.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return strings.ToLower(fld.Name)
			}
			return name
		})

		_ = v.RegisterValidation("subdomain", func(fl validator.FieldLevel) bool {
			return subdomainPattern.MatchString(fl.Field().String())
		})

		validate = v
	})
	return validate
}

// ValidateStruct checks the validate tags on s. Failures are joined into a
// single message wrapped with ErrValidation.
func ValidateStruct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return fmt.Errorf("%w: %s", ErrValidation, formatFieldErrors(fieldErrs))
}

// Validationf wraps ErrValidation with a formatted detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func formatFieldErrors(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		var msg string
		switch fe.Tag() {
		case "required":
			msg = field + " is required"
		case "email":
			msg = field + " must be a valid email address"
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		case "oneof":
			msg = fmt.Sprintf("%s must be one of: %s", field, fe.Param())
		case "subdomain":
			msg = field + " must be 3-63 lowercase letters, digits or hyphens"
		case "uuid":
			msg = field + " must be a valid UUID"
		default:
			msg = fmt.Sprintf("%s failed validation for %s", field, fe.Tag())
		}
		messages = append(messages, msg)
	}
	return strings.Join(messages, "; ")
}
