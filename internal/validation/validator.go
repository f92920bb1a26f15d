package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"snapshop/internal/model"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a validator that reports fields by their JSON names and knows
// the order status enum.
func New() *validatorv10.Validate {
	v := validatorv10.New(validatorv10.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// error is always nil for a non-empty tag and a non-nil func
	_ = v.RegisterValidation("order_status", func(fl validatorv10.FieldLevel) bool {
		return model.OrderStatus(fl.Field().String()).Valid()
	})

	return v
}

// Check validates s and converts any failures into a *model.ValidationError.
func Check(v *validatorv10.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fieldPath(fe.Namespace())] = message(fe)
	}
	return &model.ValidationError{Fields: fields}
}

// fieldPath drops the root struct name from a namespace such as
// "Product.urls.regular".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s entries", fe.Param())
	case "order_status":
		return fmt.Sprintf("must be one of %s, %s, %s (got %q)",
			model.OrderStatusCreated, model.OrderStatusPending, model.OrderStatusCompleted, fe.Value())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
