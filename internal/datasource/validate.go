package datasource

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gabpaderog/maxicoffee-admin/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report violations under the field's JSON name so the UI can annotate
	// inputs directly.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkStruct runs tag-based validation and flattens the result into the
// field→message shape consumed by forms.
func checkStruct(v any) models.FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return models.FieldErrors{"_": err.Error()}
	}

	fieldErrs := make(models.FieldErrors, len(violations))
	for _, fe := range violations {
		field := fe.Field()
		if _, seen := fieldErrs[field]; seen {
			continue
		}
		fieldErrs[field] = message(field, fe)
	}
	return fieldErrs
}

func message(field string, fe validator.FieldError) string {
	label := labelFor(field)
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "oneof":
		return "Invalid " + strings.ToLower(label)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	}
	return "Invalid " + strings.ToLower(label)
}

func labelFor(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
