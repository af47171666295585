package validate

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors maps a form field to its validation message, rendered inline
// next to the field.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string { return "validation failed" }

// Struct validates a form struct and reports per-field failures.
func Struct(s any) FieldErrors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}
	fe := make(FieldErrors, len(verrs))
	for _, f := range verrs {
		switch f.Tag() {
		case "required":
			fe[f.Field()] = "this field is required"
		case "max":
			fe[f.Field()] = "value is too long"
		default:
			fe[f.Field()] = "invalid value"
		}
	}
	return fe
}
