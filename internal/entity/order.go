package entity

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
	OrderStatusFailed  OrderStatus = "FAILED"
)

// Terminal reports whether the status can no longer change and the gateway
// does not need to be asked about the order again. Statuses the provider
// invents that we do not know about are treated as non-terminal.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusFailed
}

// Order holds the caller-supplied parameters of a new payment order.
type Order struct {
	ID            string
	Amount        float64
	CustomerID    string
	CustomerPhone string
	CustomerEmail string
}

// StatusRecord is the last known state of one payment order. Every write
// replaces the whole record, there are no partial updates.
type StatusRecord struct {
	OrderID   string
	Status    OrderStatus
	UpdatedAt time.Time
	Detail    *PaymentDetail
}

// PaymentDetail carries the provider-supplied payment attributes. It is nil
// until a gateway response or a webhook has reported them.
type PaymentDetail struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	PaymentTime   string  `json:"payment_time,omitempty"`
}

// PaymentSession is the result of creating an order with the gateway.
type PaymentSession struct {
	OrderID          string
	CfOrderID        string
	PaymentSessionID string
}

type ResultSource string

const (
	ResultSourceCache ResultSource = "cache"
	ResultSourceLive  ResultSource = "live"
)

// VerificationResult is the answer to a payment-status query. Source tells
// whether the answer came from the local cache or a live gateway call.
type VerificationResult struct {
	OrderID string
	Status  OrderStatus
	IsPaid  bool
	Detail  *PaymentDetail
	Source  ResultSource
}

type StatusCheckJob struct {
	OrderID string
}

type StatusCheckResult struct {
	OrderID string
	Status  OrderStatus
	Detail  *PaymentDetail
}

func NewStatusCheckJob(orderID string) StatusCheckJob {
	return StatusCheckJob{OrderID: orderID}
}
