package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON field names so errors line up with the payload
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate runs struct-tag validation on v and converts the first failure into
// a *ValidationError.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("failed to validate %T: %w", v, err)
	}
	fe := verrs[0]
	return fieldError(fe.Field(), describe(fe))
}

func describe(fe validator.FieldError) string {
	kind := fe.Kind()
	if kind == reflect.Ptr && fe.Type() != nil {
		kind = fe.Type().Elem().Kind()
	}
	numeric := kind >= reflect.Int && kind <= reflect.Float64

	switch fe.Tag() {
	case "required":
		return "Required"
	case "min", "gte":
		if numeric {
			return "Number must be greater than or equal to " + fe.Param()
		}
		return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
	case "max", "lte":
		if numeric {
			return "Number must be less than or equal to " + fe.Param()
		}
		return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
	case "email":
		return "Invalid email"
	case "oneof":
		opts := strings.Fields(fe.Param())
		for i, o := range opts {
			opts[i] = "'" + o + "'"
		}
		return "Invalid enum value. Expected " + strings.Join(opts, " | ")
	default:
		return "Invalid value"
	}
}
