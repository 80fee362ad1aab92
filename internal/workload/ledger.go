package workload

import (
	"context"
	"sync"
)

// Ledger tracks per-contractor workload counters. Calls are side effects of
// committed lifecycle transitions; idempotency under retries is the backing
// store's concern, not the caller's.
type Ledger interface {
	// JobAssigned increments the contractor's active-project counter.
	JobAssigned(ctx context.Context, contractorID string) error

	// JobCompleted decrements active, increments completed and accrues
	// the accepted bid's amount as earnings.
	JobCompleted(ctx context.Context, contractorID string, earnings float64) error
}

// Counters is a snapshot of one contractor's workload.
type Counters struct {
	Active    int64
	Completed int64
	Earnings  float64
}

// MemoryLedger keeps counters in process. Used when redis is not configured
// and in tests.
type MemoryLedger struct {
	mu       sync.Mutex
	counters map[string]*Counters
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{counters: make(map[string]*Counters)}
}

func (m *MemoryLedger) get(contractorID string) *Counters {
	c, ok := m.counters[contractorID]
	if !ok {
		c = &Counters{}
		m.counters[contractorID] = c
	}
	return c
}

func (m *MemoryLedger) JobAssigned(ctx context.Context, contractorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.get(contractorID).Active++
	return nil
}

func (m *MemoryLedger) JobCompleted(ctx context.Context, contractorID string, earnings float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.get(contractorID)
	c.Active--
	c.Completed++
	c.Earnings += earnings
	return nil
}

// Snapshot returns a copy of the contractor's counters.
func (m *MemoryLedger) Snapshot(contractorID string) Counters {
	m.mu.Lock()
	defer m.mu.Unlock()

	return *m.get(contractorID)
}
