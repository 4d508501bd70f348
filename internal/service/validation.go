package service

import (
	"fmt"
	"reflect"

	perrors "github.com/abgdnv/crickstore/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// newValidator creates a validator that understands decimal amounts, so `min` tags apply to prices.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return v
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// validateStruct runs struct validation and marks failures with ErrValidation.
// The validator.ValidationErrors stay reachable through errors.As.
func validateStruct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", perrors.ErrValidation, err)
	}
	return nil
}
