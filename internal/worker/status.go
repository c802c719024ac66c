package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ivanpodgorny/payrelay/internal/entity"
	"go.uber.org/zap"
)

// StatusChecker polls the payment gateway for orders whose status is not yet
// terminal and queues a cache update when the status changes. Orders a
// webhook has already settled are skipped without a gateway call. Jobs for
// non-terminal orders are re-queued after pollInterval, so the cache
// converges even when the provider never delivers a webhook.
// StatusChecker.workersCount workers are started by Do.
type StatusChecker struct {
	repository   CheckerRepository
	client       GatewayClient
	jobs         chan entity.StatusCheckJob
	results      chan<- entity.StatusCheckResult
	wg           *sync.WaitGroup
	logger       *zap.Logger
	pollInterval time.Duration
	workersCount int
}

type CheckerRepository interface {
	Get(orderID string) (entity.StatusRecord, bool)
}

type GatewayClient interface {
	GetOrder(ctx context.Context, orderID string) (status entity.OrderStatus, detail *entity.PaymentDetail, err error)
}

func NewStatusChecker(
	r CheckerRepository,
	c GatewayClient,
	j chan entity.StatusCheckJob,
	res chan<- entity.StatusCheckResult,
	wg *sync.WaitGroup,
	l *zap.Logger,
	interval time.Duration,
	w int,
) *StatusChecker {
	return &StatusChecker{
		repository:   r,
		client:       c,
		jobs:         j,
		results:      res,
		wg:           wg,
		logger:       l,
		pollInterval: interval,
		workersCount: w,
	}
}

func (c *StatusChecker) Do(ctx context.Context) {
	for i := 0; i < c.workersCount; i++ {
		c.wg.Add(1)

		go c.worker(ctx)
	}
}

func (c *StatusChecker) worker(ctx context.Context) {
	defer c.wg.Done()

	for {
		select {
		case j, ok := <-c.jobs:
			if !ok {
				return
			}

			prev := entity.OrderStatusPending
			if record, ok := c.repository.Get(j.OrderID); ok {
				if record.Status.Terminal() {
					continue
				}
				prev = record.Status
			}

			status, detail, err := c.client.GetOrder(ctx, j.OrderID)
			if err != nil {
				c.logger.Warn("order status check failed",
					zap.String("order_id", j.OrderID),
					zap.Error(err),
				)
				c.requeue(ctx, j)

				continue
			}

			if status != prev {
				c.results <- entity.StatusCheckResult{
					OrderID: j.OrderID,
					Status:  status,
					Detail:  detail,
				}
			}
			if !status.Terminal() {
				c.requeue(ctx, j)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *StatusChecker) requeue(ctx context.Context, j entity.StatusCheckJob) {
	go func() {
		select {
		case <-time.After(c.pollInterval):
		case <-ctx.Done():
			return
		}

		select {
		case c.jobs <- j:
		case <-ctx.Done():
		}
	}()
}
