package repository

import (
	"sync"
	"time"

	"github.com/ivanpodgorny/payrelay/internal/entity"
)

// Status keeps the last known state of every payment order seen by the
// process. Records are never evicted, the cache lives as long as the process.
// Handlers run on separate goroutines, so access is guarded by a RWMutex.
type Status struct {
	mu      sync.RWMutex
	records map[string]entity.StatusRecord
}

func NewStatus() *Status {
	return &Status{
		records: map[string]entity.StatusRecord{},
	}
}

func (s *Status) Get(orderID string) (entity.StatusRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[orderID]

	return record, ok
}

// Set replaces the record for orderID and stamps the current time.
// Last write wins.
func (s *Status) Set(orderID string, status entity.OrderStatus, detail *entity.PaymentDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[orderID] = entity.StatusRecord{
		OrderID:   orderID,
		Status:    status,
		UpdatedAt: time.Now(),
		Detail:    detail,
	}
}
