package booking

import (
	"context"
	"testing"
	"time"

	"github.com/flightapp/booking/internal/breaker"
	"github.com/flightapp/booking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input CreateBookingInput) (*BookingResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingResponse), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, pnr string) (*BookingResponse, error) {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingResponse), args.Error(1)
}

func (m *MockBookingUseCase) GetBookingByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBookingHistory(ctx context.Context, email string) ([]BookingResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingResponse), args.Error(1)
}

func newResilient(inner BookingUseCase, now func() time.Time) *ResilientBookingService {
	return NewResilientBookingService(inner, zap.NewNop(), breaker.Settings{
		FailureThreshold: 3,
		Cooldown:         30 * time.Second,
		HalfOpenProbes:   1,
		Now:              now,
	})
}

func TestResilientBookingService_PassThroughOnSuccess(t *testing.T) {
	inner := &MockBookingUseCase{}
	service := newResilient(inner, nil)

	ctx := context.Background()
	input := testInput()
	expected := &BookingResponse{PNR: "PNRA1B2C3D4", Status: domain.BookingStatusConfirmed}
	inner.On("CreateBooking", ctx, input).Return(expected, nil).Once()

	resp, err := service.CreateBooking(ctx, input)

	assert.NoError(t, err)
	assert.Equal(t, expected, resp)
	inner.AssertExpectations(t)
}

func TestResilientBookingService_OpensAfterConsecutiveRemoteFailures(t *testing.T) {
	inner := &MockBookingUseCase{}
	service := newResilient(inner, nil)

	ctx := context.Background()
	input := testInput()
	inner.On("CreateBooking", ctx, input).Return(nil, domain.ErrRemoteUnavailable).Times(3)

	for i := 0; i < 3; i++ {
		_, err := service.CreateBooking(ctx, input)
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	}

	// Breaker is now open: the inner service must not be touched and
	// the fixed fallback is served with no error.
	resp, err := service.CreateBooking(ctx, input)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusFailed, resp.Status)
	assert.Equal(t, FallbackMessage, resp.Message)
	inner.AssertNumberOfCalls(t, "CreateBooking", 3)
}

func TestResilientBookingService_DomainErrorsDoNotTrip(t *testing.T) {
	inner := &MockBookingUseCase{}
	service := newResilient(inner, nil)

	ctx := context.Background()
	input := testInput()
	inner.On("CreateBooking", ctx, input).Return(nil, domain.ErrInsufficientSeats).Times(10)

	for i := 0; i < 10; i++ {
		_, err := service.CreateBooking(ctx, input)
		assert.ErrorIs(t, err, domain.ErrInsufficientSeats)
	}
	// Every call reached the inner service; the breaker stayed closed.
	inner.AssertNumberOfCalls(t, "CreateBooking", 10)
}

func TestResilientBookingService_HalfOpenRecovery(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	inner := &MockBookingUseCase{}
	service := newResilient(inner, clock)

	ctx := context.Background()
	input := testInput()
	inner.On("CreateBooking", ctx, input).Return(nil, domain.ErrRemoteUnavailable).Times(3)

	for i := 0; i < 3; i++ {
		_, _ = service.CreateBooking(ctx, input)
	}

	// Within cooldown: fallback only.
	resp, err := service.CreateBooking(ctx, input)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusFailed, resp.Status)

	// After cooldown a probe is admitted; its success closes the
	// breaker again.
	now = now.Add(31 * time.Second)
	expected := &BookingResponse{PNR: "PNRA1B2C3D4", Status: domain.BookingStatusConfirmed}
	inner.On("CreateBooking", ctx, input).Return(expected, nil).Twice()

	resp, err = service.CreateBooking(ctx, input)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, resp.Status)

	resp, err = service.CreateBooking(ctx, input)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, resp.Status)
}

func TestResilientBookingService_CancelFallbackCarriesPNR(t *testing.T) {
	inner := &MockBookingUseCase{}
	service := newResilient(inner, nil)

	ctx := context.Background()
	inner.On("CancelBooking", ctx, "PNRA1B2C3D4").Return(nil, domain.ErrRemoteUnavailable).Times(3)

	for i := 0; i < 3; i++ {
		_, _ = service.CancelBooking(ctx, "PNRA1B2C3D4")
	}

	resp, err := service.CancelBooking(ctx, "PNRA1B2C3D4")
	assert.NoError(t, err)
	assert.Equal(t, "PNRA1B2C3D4", resp.PNR)
	assert.Equal(t, domain.BookingStatusFailed, resp.Status)
	assert.Equal(t, FallbackMessage, resp.Message)
}

func TestResilientBookingService_BreakersAreIndependent(t *testing.T) {
	inner := &MockBookingUseCase{}
	service := newResilient(inner, nil)

	ctx := context.Background()
	input := testInput()
	inner.On("CreateBooking", ctx, input).Return(nil, domain.ErrRemoteUnavailable).Times(3)

	for i := 0; i < 3; i++ {
		_, _ = service.CreateBooking(ctx, input)
	}

	// cancelBooking still reaches the inner service.
	cancelled := &BookingResponse{PNR: "PNRA1B2C3D4", Status: domain.BookingStatusCancelled}
	inner.On("CancelBooking", ctx, "PNRA1B2C3D4").Return(cancelled, nil).Once()

	resp, err := service.CancelBooking(ctx, "PNRA1B2C3D4")
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, resp.Status)
}

func TestResilientBookingService_ReadsBypassBreaker(t *testing.T) {
	inner := &MockBookingUseCase{}
	service := newResilient(inner, nil)

	ctx := context.Background()
	b := confirmedBooking()
	inner.On("GetBookingByPNR", ctx, b.PNR).Return(b, nil).Once()
	inner.On("GetBookingHistory", ctx, b.PassengerEmail).Return([]BookingResponse{}, nil).Once()

	found, err := service.GetBookingByPNR(ctx, b.PNR)
	assert.NoError(t, err)
	assert.Equal(t, b.PNR, found.PNR)

	history, err := service.GetBookingHistory(ctx, b.PassengerEmail)
	assert.NoError(t, err)
	assert.Empty(t, history)
	inner.AssertExpectations(t)
}
