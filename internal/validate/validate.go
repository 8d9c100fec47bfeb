// Package validate wraps the shared request validator and turns its field
// errors into localized apperr validation errors.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"event-rsvp/internal/apperr"
	"event-rsvp/internal/phone"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if err := val.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phone.Valid(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("validate: register phone: %v", err))
	}
	return val
}

// Struct validates a request struct. A failure is always an *apperr.Error
// with one message per offending field.
func Struct(req any) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate request: %w", err)
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return apperr.ValidationFields(fields)
}

// Field validates a single value against tag and reports failures under
// the given field name.
func Field(name string, value any, tag string) error {
	err := v.Var(value, tag)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate %s: %w", name, err)
	}
	return apperr.Validation(name, message(fieldErrs[0]))
}

func message(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "required_if":
		return "campo obrigatório"
	case "min":
		if isText {
			return fmt.Sprintf("deve ter pelo menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("deve ser no mínimo %s", fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("deve ser no máximo %s", fe.Param())
	case "phone":
		return "telefone deve estar no formato (11) 91234-5678"
	case "url":
		return "link inválido"
	default:
		return "valor inválido"
	}
}
