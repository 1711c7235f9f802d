package validator

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"meetingroom/internal/pkg/apperror"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string)
	for _, err := range verrs {
		out[err.Field()] = err.Tag()
	}
	return out
}

// Struct is Validate folded into a single validation error.
func Struct(v interface{}) error {
	fields := Validate(v)
	if len(fields) == 0 {
		return nil
	}
	parts := make([]string, 0, len(fields))
	for f, tag := range fields {
		parts = append(parts, f+" ("+tag+")")
	}
	sort.Strings(parts)
	return apperror.Validation("invalid fields: %s", strings.Join(parts, ", "))
}
