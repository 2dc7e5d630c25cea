package blogs

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"blogapi/models"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" {
			return name
		}
		return fld.Name
	})
	_ = v.RegisterValidation("blogstatus", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("subcategory", func(fl validator.FieldLevel) bool {
		return models.Subcategory(fl.Field().String()).Valid()
	})
	return v
}

// validationError converts validator output into a ValidationError.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		ve.Fields[fe.Field()] = message(fe)
	}
	return ve
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "blogstatus":
		return "must be one of " + join(models.Statuses)
	case "subcategory":
		return "must be one of " + join(models.Subcategories)
	default:
		return "is invalid"
	}
}

func join[T ~string](vals []T) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = string(v)
	}
	return strings.Join(s, ", ")
}
