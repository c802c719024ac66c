package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ivanpodgorny/payrelay/internal/entity"
)

// Payment reconciles provider-reported order state (direct queries and
// webhooks) with the local status cache and serves status queries from it.
type Payment struct {
	repository    StatusRepository
	client        GatewayClient
	queue         chan<- entity.StatusCheckJob
	fallbackPhone string
}

type StatusRepository interface {
	Get(orderID string) (entity.StatusRecord, bool)
	Set(orderID string, status entity.OrderStatus, detail *entity.PaymentDetail)
}

type GatewayClient interface {
	CreateOrder(ctx context.Context, order entity.Order) (entity.PaymentSession, error)
	GetOrder(ctx context.Context, orderID string) (entity.OrderStatus, *entity.PaymentDetail, error)
}

func NewPayment(r StatusRepository, c GatewayClient, q chan<- entity.StatusCheckJob, fallbackPhone string) *Payment {
	return &Payment{
		repository:    r,
		client:        c,
		queue:         q,
		fallbackPhone: fallbackPhone,
	}
}

const phoneLength = 10

// CreateOrder registers the order with the payment gateway, seeds the status
// cache with PENDING and queues a background status check so the cache
// converges even if the provider's webhook never arrives. A gateway failure
// leaves the cache untouched.
func (s *Payment) CreateOrder(ctx context.Context, order entity.Order) (entity.PaymentSession, error) {
	order.CustomerPhone = normalizePhone(order.CustomerPhone, s.fallbackPhone)

	session, err := s.client.CreateOrder(ctx, order)
	if err != nil {
		return entity.PaymentSession{}, err
	}

	s.repository.Set(order.ID, entity.OrderStatusPending, nil)

	go func() {
		s.queue <- entity.NewStatusCheckJob(order.ID)
	}()

	return session, nil
}

type webhookEnvelope struct {
	Data struct {
		Order struct {
			OrderID               string  `json:"order_id"`
			OrderStatus           string  `json:"order_status"`
			OrderAmount           float64 `json:"order_amount"`
			OrderCurrency         string  `json:"order_currency"`
			OrderStatusUpdateTime string  `json:"order_status_update_time"`
		} `json:"order"`
		Payment struct {
			PaymentMethod string `json:"payment_method"`
			PaymentTime   string `json:"payment_time"`
		} `json:"payment"`
	} `json:"data"`
	EventTime string `json:"event_time"`
	Type      string `json:"type"`
}

// HandleWebhook merges a verified provider notification into the cache. The
// acknowledgment contract is "received", not "processed": a payload missing
// the order id or status is dropped without an error. Signature verification
// happens before the payload reaches here.
func (s *Payment) HandleWebhook(payload []byte) error {
	envelope := webhookEnvelope{}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return err
	}

	var (
		orderID = envelope.Data.Order.OrderID
		status  = envelope.Data.Order.OrderStatus
	)
	if orderID == "" || status == "" {
		return nil
	}

	paymentTime := envelope.Data.Payment.PaymentTime
	if paymentTime == "" {
		paymentTime = envelope.Data.Order.OrderStatusUpdateTime
	}

	s.repository.Set(orderID, entity.OrderStatus(status), &entity.PaymentDetail{
		Amount:        envelope.Data.Order.OrderAmount,
		Currency:      envelope.Data.Order.OrderCurrency,
		PaymentMethod: envelope.Data.Payment.PaymentMethod,
		PaymentTime:   paymentTime,
	})

	return nil
}

// VerifyPayment answers a status query. A cached PAID is returned without
// contacting the gateway. Otherwise the gateway is queried and its answer
// overwrites the cache; when the gateway fails, any cached record is returned
// as a degraded answer and the failure is surfaced only to callers we know
// nothing about.
func (s *Payment) VerifyPayment(ctx context.Context, orderID string) (entity.VerificationResult, error) {
	if record, ok := s.repository.Get(orderID); ok && record.Status == entity.OrderStatusPaid {
		return resultFromRecord(record), nil
	}

	status, detail, err := s.client.GetOrder(ctx, orderID)
	if err != nil {
		record, ok := s.repository.Get(orderID)
		if !ok {
			return entity.VerificationResult{}, err
		}

		return resultFromRecord(record), nil
	}

	s.repository.Set(orderID, status, detail)

	return entity.VerificationResult{
		OrderID: orderID,
		Status:  status,
		IsPaid:  status == entity.OrderStatusPaid,
		Detail:  detail,
		Source:  entity.ResultSourceLive,
	}, nil
}

func resultFromRecord(record entity.StatusRecord) entity.VerificationResult {
	return entity.VerificationResult{
		OrderID: record.OrderID,
		Status:  record.Status,
		IsPaid:  record.Status == entity.OrderStatusPaid,
		Detail:  record.Detail,
		Source:  entity.ResultSourceCache,
	}
}

// normalizePhone strips everything but digits from phone. Numbers longer
// than ten digits keep their last ten, shorter ones are replaced with the
// fallback number the provider's sandbox accepts.
func normalizePhone(phone, fallback string) string {
	digits := strings.Builder{}
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	normalized := digits.String()
	if len(normalized) > phoneLength {
		return normalized[len(normalized)-phoneLength:]
	}
	if len(normalized) < phoneLength {
		return fallback
	}

	return normalized
}
