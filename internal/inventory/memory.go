package inventory

import (
	"context"
	"sync"

	"github.com/flightapp/booking/internal/domain"
)

// Memory is a deterministic in-process inventory with the same
// compare-and-swap semantics the remote store promises. It backs the
// concurrency and failure-injection tests and the local dev mode.
type Memory struct {
	mu      sync.Mutex
	flights map[int64]*domain.FlightInventory

	// FailReads / FailWrites simulate an unreachable remote.
	FailReads  bool
	FailWrites bool
}

func NewMemory(flights ...domain.FlightInventory) *Memory {
	m := &Memory{flights: make(map[int64]*domain.FlightInventory)}
	for i := range flights {
		f := flights[i]
		m.flights[f.ID] = &f
	}
	return m
}

func (m *Memory) GetByID(ctx context.Context, flightID int64) (*domain.FlightInventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return nil, domain.ErrRemoteUnavailable
	}
	f, ok := m.flights[flightID]
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	snapshot := *f
	return &snapshot, nil
}

func (m *Memory) ReduceSeats(ctx context.Context, flightID int64, n int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return false, domain.ErrRemoteUnavailable
	}
	f, ok := m.flights[flightID]
	if !ok {
		return false, nil
	}
	if f.AvailableSeats < n {
		return false, nil
	}
	f.AvailableSeats -= n
	return true, nil
}

func (m *Memory) RestoreSeats(ctx context.Context, flightID int64, n int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return false, domain.ErrRemoteUnavailable
	}
	f, ok := m.flights[flightID]
	if !ok {
		return false, nil
	}
	f.AvailableSeats += n
	return true, nil
}

// Seats reports the current available count, for assertions.
func (m *Memory) Seats(flightID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.flights[flightID]; ok {
		return f.AvailableSeats
	}
	return 0
}

var _ Client = (*Memory)(nil)
