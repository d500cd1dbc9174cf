package booking

import (
	"context"
	"errors"

	"github.com/flightapp/booking/internal/breaker"
	"github.com/flightapp/booking/internal/domain"
	"go.uber.org/zap"
)

// FallbackMessage is the fixed degraded-mode message. It is
// deliberately distinct from every domain error so operators can tell
// "your request was invalid" apart from "the system is degraded".
const FallbackMessage = "Service temporarily unavailable. Please try again later."

// ResilientBookingService guards the write operations with one
// circuit breaker each. An open breaker short-circuits to a
// FAILED-status response instead of raising a domain error: the
// caller could not have caused the condition. Reads pass through
// unguarded.
type ResilientBookingService struct {
	inner  BookingUseCase
	create *breaker.Breaker
	cancel *breaker.Breaker
	logger *zap.Logger
}

func NewResilientBookingService(inner BookingUseCase, logger *zap.Logger, settings breaker.Settings) *ResilientBookingService {
	return &ResilientBookingService{
		inner:  inner,
		create: breaker.New(settings),
		cancel: breaker.New(settings),
		logger: logger,
	}
}

func (s *ResilientBookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*BookingResponse, error) {
	var resp *BookingResponse
	err := s.create.Do(func() error {
		var innerErr error
		resp, innerErr = s.inner.CreateBooking(ctx, input)
		return innerErr
	}, isInfrastructureFailure)
	if errors.Is(err, breaker.ErrOpen) {
		s.logger.Warn("circuit breaker open, serving createBooking fallback")
		return fallbackResponse(""), nil
	}
	return resp, err
}

func (s *ResilientBookingService) CancelBooking(ctx context.Context, pnr string) (*BookingResponse, error) {
	var resp *BookingResponse
	err := s.cancel.Do(func() error {
		var innerErr error
		resp, innerErr = s.inner.CancelBooking(ctx, pnr)
		return innerErr
	}, isInfrastructureFailure)
	if errors.Is(err, breaker.ErrOpen) {
		s.logger.Warn("circuit breaker open, serving cancelBooking fallback", zap.String("pnr", pnr))
		return fallbackResponse(pnr), nil
	}
	return resp, err
}

func (s *ResilientBookingService) GetBookingByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	return s.inner.GetBookingByPNR(ctx, pnr)
}

func (s *ResilientBookingService) GetBookingHistory(ctx context.Context, email string) ([]BookingResponse, error) {
	return s.inner.GetBookingHistory(ctx, email)
}

// isInfrastructureFailure decides what counts against the breaker.
// Domain rejections are the caller's problem and must not trip it.
func isInfrastructureFailure(err error) bool {
	return errors.Is(err, domain.ErrRemoteUnavailable) || errors.Is(err, domain.ErrBookingPersist)
}

func fallbackResponse(pnr string) *BookingResponse {
	return &BookingResponse{
		PNR:     pnr,
		Status:  domain.BookingStatusFailed,
		Message: FallbackMessage,
	}
}

var _ BookingUseCase = (*ResilientBookingService)(nil)
