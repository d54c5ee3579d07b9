// Package validation wraps the validator/v10 library with domain error
// conversion for canonical ingestion rows.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/audiologapp/audiolog/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for the catalog.
func New() *Validator {
	return &Validator{v: validator.New()}
}

// Validate validates a struct and returns a domain validation error listing
// every failed field.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !domainerrors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, friendlyMessage(e))
	}
	return domainerrors.Validation(strings.Join(msgs, "; "))
}

// friendlyMessage renders one field error in plain language.
func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gte":
		return e.Field() + " must be " + e.Param() + " or more"
	case "lte":
		return e.Field() + " must be " + e.Param() + " or less"
	default:
		return e.Field() + " failed " + e.Tag() + " validation"
	}
}
