package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

type GenerateTokenRequest struct {
	OrderID       string  `json:"order_id" validate:"required,max=50,orderid"`
	OrderAmount   float64 `json:"order_amount" validate:"required,gt=0"`
	CustomerID    string  `json:"customer_id" validate:"required"`
	CustomerPhone string  `json:"customer_phone" validate:"required"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
}

type Validator interface {
	Struct(ctx context.Context, s any) error
	Var(ctx context.Context, field any, tag string) error
}

func readJSONBody(v any, r *http.Request) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}

func readJSONBodyAndValidate(ctx context.Context, v any, r *http.Request, validator Validator) error {
	if err := readJSONBody(v, r); err != nil {
		return err
	}

	return validator.Struct(ctx, v)
}
