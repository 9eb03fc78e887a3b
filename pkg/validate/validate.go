// Package validate runs struct-tag validation on outgoing payloads and
// reports failures in the same field-keyed shape the backend uses for 422
// responses, so the form layer renders both identically.
package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"salespoint/internal/apierror"
)

var v = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report fields under their json names so keys line up with server-side
	// validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Struct validates data and returns a *apierror.ValidationErrors on failure,
// nil when clean.
func Struct(data any) error {
	err := v.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate: %w", err)
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], message(fe))
	}
	return &apierror.ValidationErrors{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
