package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/imroc/req/v3"
	"github.com/ivanpodgorny/payrelay/internal/entity"
	inerr "github.com/ivanpodgorny/payrelay/internal/errors"
)

const (
	apiVersion    = "2022-09-01"
	orderCurrency = "INR"
)

// Cashfree is the client of the Cashfree PG orders API. Credentials are sent
// on every request, the base URL switches between the live and the sandbox
// host via configuration.
type Cashfree struct {
	req *req.Client
}

func NewCashfree(addr, clientID, clientSecret string) *Cashfree {
	return &Cashfree{
		req: req.C().
			SetBaseURL(addr).
			SetCommonHeader("x-client-id", clientID).
			SetCommonHeader("x-client-secret", clientSecret).
			SetCommonHeader("x-api-version", apiVersion).
			SetCommonContentType("application/json").
			SetTimeout(5 * time.Second),
	}
}

type orderRequest struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     float64         `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails customerDetails `json:"customer_details"`
}

type customerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type orderResponse struct {
	OrderID               string  `json:"order_id"`
	CfOrderID             string  `json:"cf_order_id"`
	PaymentSessionID      string  `json:"payment_session_id"`
	OrderStatus           string  `json:"order_status"`
	OrderAmount           float64 `json:"order_amount"`
	OrderCurrency         string  `json:"order_currency"`
	PaymentMethod         string  `json:"payment_method"`
	OrderStatusUpdateTime string  `json:"order_status_update_time"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// CreateOrder registers a new payment order and returns the session the
// customer uses to complete the payment on the provider-hosted page.
// Currency is fixed to INR.
func (c *Cashfree) CreateOrder(ctx context.Context, order entity.Order) (entity.PaymentSession, error) {
	var (
		respBody orderResponse
		errBody  errorResponse
	)
	resp, err := c.req.R().
		SetContext(ctx).
		SetBody(&orderRequest{
			OrderID:       order.ID,
			OrderAmount:   order.Amount,
			OrderCurrency: orderCurrency,
			CustomerDetails: customerDetails{
				CustomerID:    order.CustomerID,
				CustomerEmail: order.CustomerEmail,
				CustomerPhone: order.CustomerPhone,
			},
		}).
		SetSuccessResult(&respBody).
		SetErrorResult(&errBody).
		Post("/orders")
	if err != nil {
		return entity.PaymentSession{}, fmt.Errorf("%w: %v", inerr.ErrGatewayUnavailable, err)
	}

	if resp.IsErrorState() {
		return entity.PaymentSession{}, gatewayError(resp, errBody)
	}

	return entity.PaymentSession{
		OrderID:          respBody.OrderID,
		CfOrderID:        respBody.CfOrderID,
		PaymentSessionID: respBody.PaymentSessionID,
	}, nil
}

// GetOrder fetches the current status and payment details of an order.
// Statuses the provider reports are passed through verbatim.
func (c *Cashfree) GetOrder(ctx context.Context, orderID string) (entity.OrderStatus, *entity.PaymentDetail, error) {
	var (
		respBody orderResponse
		errBody  errorResponse
	)
	resp, err := c.req.R().
		SetContext(ctx).
		SetSuccessResult(&respBody).
		SetErrorResult(&errBody).
		SetPathParam("orderID", orderID).
		Get("/orders/{orderID}")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", inerr.ErrGatewayUnavailable, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return "", nil, inerr.ErrOrderNotFound
	}

	if resp.IsErrorState() {
		return "", nil, gatewayError(resp, errBody)
	}

	status := entity.OrderStatus(respBody.OrderStatus)
	detail := &entity.PaymentDetail{
		Amount:        respBody.OrderAmount,
		Currency:      respBody.OrderCurrency,
		PaymentMethod: respBody.PaymentMethod,
	}
	if status == entity.OrderStatusPaid {
		detail.PaymentTime = respBody.OrderStatusUpdateTime
	}

	return status, detail, nil
}

func gatewayError(resp *req.Response, errBody errorResponse) error {
	if errBody.Message != "" {
		return fmt.Errorf("cashfree: %s", errBody.Message)
	}

	return fmt.Errorf("server responded with status code %d", resp.StatusCode)
}
