package worker

import (
	"context"
	"sync"

	"github.com/ivanpodgorny/payrelay/internal/entity"
)

// CacheUpdater drains status check results into the status cache.
// CacheUpdater.workersCount workers are started by Do.
type CacheUpdater struct {
	repository   UpdaterRepository
	queue        <-chan entity.StatusCheckResult
	wg           *sync.WaitGroup
	workersCount int
}

type UpdaterRepository interface {
	Set(orderID string, status entity.OrderStatus, detail *entity.PaymentDetail)
}

func NewCacheUpdater(r UpdaterRepository, q <-chan entity.StatusCheckResult, wg *sync.WaitGroup, w int) *CacheUpdater {
	return &CacheUpdater{
		repository:   r,
		queue:        q,
		wg:           wg,
		workersCount: w,
	}
}

func (u *CacheUpdater) Do(ctx context.Context) {
	for i := 0; i < u.workersCount; i++ {
		u.wg.Add(1)

		go u.worker(ctx)
	}
}

func (u *CacheUpdater) worker(ctx context.Context) {
	defer u.wg.Done()

	for {
		select {
		case res, ok := <-u.queue:
			if !ok {
				return
			}

			u.repository.Set(res.OrderID, res.Status, res.Detail)
		case <-ctx.Done():
			return
		}
	}
}
