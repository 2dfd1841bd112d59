package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// echoValidator adapts go-playground/validator to the echo.Validator
// interface so handlers can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate collapses all field failures into one message so the client sees
// every problem with the payload at once.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}
	msgs := make([]string, 0, len(fields))
	for _, fe := range fields {
		msgs = append(msgs, fieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// fieldError phrases one failure against the JSON name of the field. Struct
// fields are exported CamelCase; the wire format is camelCase.
func fieldError(fe validator.FieldError) string {
	field := jsonName(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

func jsonName(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return field
	}
	return string(unicode.ToLower(r)) + field[size:]
}
