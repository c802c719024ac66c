package validator

import (
	"context"
	"reflect"

	v10validator "github.com/go-playground/validator/v10"
)

type Validator struct {
	engine Engine
}

type Engine interface {
	StructCtx(ctx context.Context, s any) error
	VarCtx(ctx context.Context, field any, tag string) error
}

func New(e Engine) *Validator {
	return &Validator{engine: e}
}

func (v *Validator) Struct(ctx context.Context, s any) error {
	return v.engine.StructCtx(ctx, s)
}

func (v *Validator) Var(ctx context.Context, field any, tag string) error {
	return v.engine.VarCtx(ctx, field, tag)
}

// OrderID reports whether the value is a valid order identifier: non-empty
// and made of latin letters, digits, "_" and "-" only, the character set
// Cashfree accepts for order ids.
func OrderID(fl v10validator.FieldLevel) bool {
	val := fl.Field()
	if val.Kind() != reflect.String {
		return false
	}

	id := val.String()
	if id == "" {
		return false
	}

	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}

	return true
}
