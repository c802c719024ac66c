package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ivanpodgorny/payrelay/internal/entity"
)

type Payment struct {
	processor PaymentProcessor
	validator Validator
}

type PaymentProcessor interface {
	CreateOrder(ctx context.Context, order entity.Order) (entity.PaymentSession, error)
	HandleWebhook(payload []byte) error
	VerifyPayment(ctx context.Context, orderID string) (entity.VerificationResult, error)
}

func NewPayment(p PaymentProcessor, v Validator) *Payment {
	return &Payment{
		processor: p,
		validator: v,
	}
}

// GenerateToken handles the order-creation request of the merchant frontend.
// On success it returns the provider's payment session id, on a gateway
// failure a 500 with the provider's message.
func (h *Payment) GenerateToken(w http.ResponseWriter, r *http.Request) {
	req := GenerateTokenRequest{}
	if err := readJSONBodyAndValidate(r.Context(), &req, r, h.validator); err != nil {
		badRequest(w)

		return
	}

	session, err := h.processor.CreateOrder(r.Context(), entity.Order{
		ID:            req.OrderID,
		Amount:        req.OrderAmount,
		CustomerID:    req.CustomerID,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		failureAsJSON(w, err.Error(), http.StatusInternalServerError)

		return
	}

	responseAsJSON(w, struct {
		Success          bool   `json:"success"`
		PaymentSessionID string `json:"payment_session_id"`
		OrderID          string `json:"order_id"`
		CfOrderID        string `json:"cf_order_id"`
	}{
		Success:          true,
		PaymentSessionID: session.PaymentSessionID,
		OrderID:          session.OrderID,
		CfOrderID:        session.CfOrderID,
	}, http.StatusOK)
}

// Webhook acknowledges a provider status notification. The signature has
// already been checked by middleware.VerifySignature, so a verified payload
// is always acknowledged with 200, even when nothing useful could be
// extracted from it.
func (h *Payment) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		serverError(w)

		return
	}

	if err := h.processor.HandleWebhook(payload); err != nil {
		failureAsJSON(w, err.Error(), http.StatusInternalServerError)

		return
	}

	responseAsJSON(w, struct {
		Success bool `json:"success"`
	}{
		Success: true,
	}, http.StatusOK)
}

// VerifyPayment answers a payment-status query for the order id in the path.
func (h *Payment) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if err := h.validator.Var(r.Context(), orderID, "orderid"); err != nil {
		badRequest(w)

		return
	}

	result, err := h.processor.VerifyPayment(r.Context(), orderID)
	if err != nil {
		failureAsJSON(w, err.Error(), http.StatusInternalServerError)

		return
	}

	responseAsJSON(w, struct {
		Success        bool                  `json:"success"`
		OrderID        string                `json:"order_id"`
		Status         entity.OrderStatus    `json:"status"`
		IsPaid         bool                  `json:"is_paid"`
		PaymentDetails *entity.PaymentDetail `json:"payment_details"`
		Source         entity.ResultSource   `json:"source"`
	}{
		Success:        true,
		OrderID:        result.OrderID,
		Status:         result.Status,
		IsPaid:         result.IsPaid,
		PaymentDetails: result.Detail,
		Source:         result.Source,
	}, http.StatusOK)
}
