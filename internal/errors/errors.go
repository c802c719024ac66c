package errors

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
