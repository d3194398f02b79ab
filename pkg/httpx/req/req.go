package req

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"storefront/pkg/errcodes"
	"storefront/pkg/rest"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary         //nolint:gochecknoglobals // skip
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip
)

// ValidationError carries per-field failures so the display layer can render
// a message next to each form field.
type ValidationError struct {
	Fields []rest.FieldError
	cause  error
}

func (e *ValidationError) Error() string {
	return e.cause.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

func Read(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("json.Decode: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid JSON"),
		)
	}

	if err := validate.StructCtx(r.Context(), dest); err != nil {
		failureErr := failure.NewInvalidArgumentError(
			"validation error",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(err.Error()),
		)

		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return &ValidationError{
				Fields: fieldErrors(validationErrors),
				cause:  failureErr,
			}
		}

		return failureErr
	}

	return nil
}

func fieldErrors(validationErrors validator.ValidationErrors) []rest.FieldError {
	fields := make([]rest.FieldError, 0, len(validationErrors))

	for _, fe := range validationErrors {
		fields = append(fields, rest.FieldError{
			Field:   lowerCamel(fe.Field()),
			Rule:    fe.Tag(),
			Message: fieldMessage(fe),
		})
	}

	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be %s characters or fewer", fe.Param())
	case "email":
		return "Must be a valid email address"
	case "url":
		return "Must be a valid URL"
	default:
		return fmt.Sprintf("Failed on rule %q", fe.Tag())
	}
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}

	runes := []rune(field)

	return string(unicode.ToLower(runes[0])) + strings.TrimPrefix(field, string(runes[0]))
}
