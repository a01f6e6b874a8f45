package content

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/geocontent/backend/lib/diff"
	"github.com/geocontent/backend/lib/exception"
	"github.com/geocontent/backend/lib/revision"
	"github.com/go-playground/validator/v10"
)

type Value interface {
	Fields() diff.Fields
}

// NewValidator returns a validator reporting fields by their JSON names.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// Validate checks value against its struct tags and reports the first
// failing field as a ValidationError.
func Validate(validate *validator.Validate, value any) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		message := fmt.Sprintf("%s failed on the '%s' rule", first.Field(), first.Tag())
		if first.Param() != "" {
			message = fmt.Sprintf("%s failed on the '%s=%s' rule", first.Field(), first.Tag(), first.Param())
		}
		return exception.NewValidationError(first.Field(), message)
	}
	return exception.NewValidationError("value", err.Error())
}

func NewStrategy[V Value](kind string, validate *validator.Validate) revision.Strategy[V] {
	return revision.Strategy[V]{
		Kind: kind,
		Validate: func(value V) error {
			return Validate(validate, value)
		},
		Fields: func(value V) diff.Fields {
			return value.Fields()
		},
	}
}
