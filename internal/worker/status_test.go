package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ivanpodgorny/payrelay/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type CheckerRepositoryMock struct {
	mock.Mock
}

func (m *CheckerRepositoryMock) Get(orderID string) (entity.StatusRecord, bool) {
	args := m.Called(orderID)

	return args.Get(0).(entity.StatusRecord), args.Bool(1)
}

type GatewayClientMock struct {
	mock.Mock
}

func (m *GatewayClientMock) GetOrder(_ context.Context, orderID string) (entity.OrderStatus, *entity.PaymentDetail, error) {
	args := m.Called(orderID)

	return args.Get(0).(entity.OrderStatus), args.Get(1).(*entity.PaymentDetail), args.Error(2)
}

func TestStatusChecker_Do(t *testing.T) {
	var (
		ctx, cancel = context.WithCancel(context.Background())
		repository  = &CheckerRepositoryMock{}
		client      = &GatewayClientMock{}
		jobsCh      = make(chan entity.StatusCheckJob, 4)
		resultsCh   = make(chan entity.StatusCheckResult, 4)
		detail      = &entity.PaymentDetail{Amount: 1, Currency: "INR"}
	)

	defer cancel()

	// ORD1 became PAID, a result is emitted and the job is dropped.
	repository.
		On("Get", "ORD1").
		Return(entity.StatusRecord{OrderID: "ORD1", Status: entity.OrderStatusPending}, true).
		Once()
	client.On("GetOrder", "ORD1").Return(entity.OrderStatusPaid, detail, nil).Once()

	// ORD2 was settled by a webhook already, the gateway is not asked.
	repository.
		On("Get", "ORD2").
		Return(entity.StatusRecord{OrderID: "ORD2", Status: entity.OrderStatusPaid}, true).
		Once()

	// ORD3 is still pending, no result is emitted.
	repository.
		On("Get", "ORD3").
		Return(entity.StatusRecord{OrderID: "ORD3", Status: entity.OrderStatusPending}, true).
		Once()
	client.On("GetOrder", "ORD3").Return(entity.OrderStatusPending, detail, nil).Once()

	jobsCh <- entity.NewStatusCheckJob("ORD1")
	jobsCh <- entity.NewStatusCheckJob("ORD2")
	jobsCh <- entity.NewStatusCheckJob("ORD3")

	checker := StatusChecker{
		repository:   repository,
		client:       client,
		jobs:         jobsCh,
		results:      resultsCh,
		wg:           &sync.WaitGroup{},
		logger:       zap.NewNop(),
		pollInterval: time.Minute,
		workersCount: 2,
	}

	checker.Do(ctx)

	assert.Eventually(
		t,
		func() bool { return len(jobsCh) == 0 },
		100*time.Millisecond,
		10*time.Millisecond,
		"queue drained",
	)
	assert.Equal(
		t,
		entity.StatusCheckResult{OrderID: "ORD1", Status: entity.OrderStatusPaid, Detail: detail},
		<-resultsCh,
		"cache update queued for the changed order",
	)
	assert.Never(
		t,
		func() bool { return len(resultsCh) > 0 },
		100*time.Millisecond,
		20*time.Millisecond,
		"no update queued for unchanged or settled orders",
	)

	repository.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestStatusChecker_GatewayFailure(t *testing.T) {
	var (
		ctx, cancel = context.WithCancel(context.Background())
		repository  = &CheckerRepositoryMock{}
		client      = &GatewayClientMock{}
		jobsCh      = make(chan entity.StatusCheckJob, 4)
		resultsCh   = make(chan entity.StatusCheckResult, 4)
	)

	defer cancel()

	repository.On("Get", "ORD1").Return(entity.StatusRecord{}, false).Once()
	client.
		On("GetOrder", "ORD1").
		Return(entity.OrderStatus(""), (*entity.PaymentDetail)(nil), errors.New("")).
		Once()

	jobsCh <- entity.NewStatusCheckJob("ORD1")

	checker := StatusChecker{
		repository:   repository,
		client:       client,
		jobs:         jobsCh,
		results:      resultsCh,
		wg:           &sync.WaitGroup{},
		logger:       zap.NewNop(),
		pollInterval: time.Minute,
		workersCount: 1,
	}

	checker.Do(ctx)

	assert.Eventually(
		t,
		func() bool { return len(jobsCh) == 0 },
		100*time.Millisecond,
		10*time.Millisecond,
		"failed check consumed",
	)
	assert.Never(
		t,
		func() bool { return len(resultsCh) > 0 },
		100*time.Millisecond,
		20*time.Millisecond,
		"no update queued on failure",
	)

	repository.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestStatusChecker_ContextCancel(t *testing.T) {
	var (
		ctx, cancel = context.WithCancel(context.Background())
		jobsCh      = make(chan entity.StatusCheckJob, 4)
		wg          = &sync.WaitGroup{}
	)

	checker := StatusChecker{
		repository:   &CheckerRepositoryMock{},
		client:       &GatewayClientMock{},
		jobs:         jobsCh,
		results:      make(chan entity.StatusCheckResult, 4),
		wg:           wg,
		logger:       zap.NewNop(),
		pollInterval: time.Minute,
		workersCount: 4,
	}

	checker.Do(ctx)
	cancel()
	wg.Wait()

	for i := 0; i < 4; i++ {
		jobsCh <- entity.NewStatusCheckJob("ORD1")
	}
	assert.Never(
		t,
		func() bool { return len(jobsCh) < 4 },
		100*time.Millisecond,
		20*time.Millisecond,
		"workers stopped after cancel",
	)
}
