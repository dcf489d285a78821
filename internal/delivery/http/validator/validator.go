// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/errors"

	"github.com/go-playground/validator/v10"
)

// messageSeparator joins the messages of every failing field.
const messageSeparator = "; "

// EchoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type EchoValidator struct {
	v *validator.Validate
}

// New returns an EchoValidator ready to be assigned to echo.Echo.Validator.
func New() *EchoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	return &EchoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Field failures come back as a
// validation AppError whose message lists every failing field.
func (ev *EchoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	ve, ok := errors.AsType[validator.ValidationErrors](err)
	if !ok {
		return errors.WithStack(err)
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}

	return domainerrors.NewBaseError(
		domainerrors.KindInvalidArgument,
		http.StatusBadRequest,
		domainerrors.ErrValidationFailed.ErrorCode(),
		strings.Join(msgs, messageSeparator),
		"",
	)
}

// jsonFieldName reports fields by their JSON name so messages match the request body.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}

	return name
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "uuid":
		return field + " must be a valid UUID"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
