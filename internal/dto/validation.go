package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// RegisterCustomValidators installs the domain validation tags used by the
// request DTOs. Must be called once on the shared validator instance.
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		return academicYearPattern.MatchString(fl.Field().String())
	})
}
