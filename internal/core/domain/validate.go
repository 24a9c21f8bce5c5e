package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	return v
}

// Validate reports the first absent or empty field of f as a
// [*ValidationError].
func (f ProductFields) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := fieldErrs[0]
	name := fe.Field()
	if strings.Contains(name, "[") {
		return &ValidationError{
			Field:   name,
			Message: fmt.Sprintf("%s must not be empty", name),
		}
	}
	return &ValidationError{
		Field:   name,
		Message: fmt.Sprintf("%s is required", name),
	}
}
