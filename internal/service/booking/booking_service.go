package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flightapp/booking/internal/domain"
	"github.com/flightapp/booking/internal/email"
	"github.com/flightapp/booking/internal/inventory"
	"github.com/flightapp/booking/internal/notify"
	"github.com/flightapp/booking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*BookingResponse, error)
	CancelBooking(ctx context.Context, pnr string) (*BookingResponse, error)
	GetBookingByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	GetBookingHistory(ctx context.Context, email string) ([]BookingResponse, error)
}

// Notifier is the fire-and-forget hand-off to the outbound
// notification queue.
type Notifier interface {
	Enqueue(notification notify.EmailNotification)
}

type CreateBookingInput struct {
	FlightID       int64  `json:"flightId"`
	PassengerName  string `json:"passengerName"`
	PassengerEmail string `json:"passengerEmail"`
	PassengerPhone string `json:"passengerPhone"`
	Seats          int    `json:"numberOfSeats"`
}

type BookingResponse struct {
	PNR              string               `json:"pnr,omitempty"`
	FlightNumber     string               `json:"flightNumber,omitempty"`
	PassengerName    string               `json:"passengerName,omitempty"`
	Seats            int                  `json:"numberOfSeats,omitempty"`
	TotalAmountCents int64                `json:"totalAmountCents,omitempty"`
	Status           domain.BookingStatus `json:"status"`
	BookingDate      *time.Time           `json:"bookingDate,omitempty"`
	Message          string               `json:"message"`
}

type BookingService struct {
	bookings     repository.BookingRepository
	inventory    inventory.Client
	notifier     Notifier
	logger       *zap.Logger
	pnrPrefix    string
	pnrRetries   int
	storeTimeout time.Duration
}

type BookingServiceOption func(*BookingService)

func WithPNRPrefix(prefix string) BookingServiceOption {
	return func(s *BookingService) {
		if prefix != "" {
			s.pnrPrefix = prefix
		}
	}
}

func WithPNRRetries(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.pnrRetries = n
		}
	}
}

func WithStoreTimeout(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	inv inventory.Client,
	notifier Notifier,
	logger *zap.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		inventory:    inv,
		notifier:     notifier,
		logger:       logger,
		pnrPrefix:    "PNR",
		pnrRetries:   3,
		storeTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*BookingResponse, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	flight, err := s.inventory.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	// Fast-path check against a possibly stale snapshot. This only
	// avoids a wasted remote write; the conditional decrement below is
	// the actual availability guard.
	if flight.AvailableSeats < input.Seats {
		return nil, domain.ErrInsufficientSeats
	}

	reduced, err := s.inventory.ReduceSeats(ctx, input.FlightID, input.Seats)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSeatReservationFailed, err)
	}
	if !reduced {
		return nil, domain.ErrSeatReservationFailed
	}

	booking := &domain.Booking{
		ID:               uuid.NewString(),
		FlightID:         input.FlightID,
		FlightNumber:     flight.FlightNumber,
		PassengerName:    input.PassengerName,
		PassengerEmail:   input.PassengerEmail,
		PassengerPhone:   input.PassengerPhone,
		Seats:            input.Seats,
		TotalAmountCents: flight.PriceCents * int64(input.Seats),
		Status:           domain.BookingStatusConfirmed,
		BookingDate:      time.Now().UTC(),
	}

	if err := s.persistWithFreshPNR(ctx, booking); err != nil {
		s.compensateStrandedSeats(ctx, booking)
		return nil, fmt.Errorf("%w: %w", domain.ErrBookingPersist, err)
	}

	s.logger.Info("booking created",
		zap.String("pnr", booking.PNR),
		zap.Int64("flight_id", booking.FlightID),
		zap.Int("seats", booking.Seats))

	s.notifier.Enqueue(notify.EmailNotification{
		To:            booking.PassengerEmail,
		Subject:       email.ConfirmationSubject(booking.PNR),
		Body:          email.ConfirmationBody(booking),
		PNR:           booking.PNR,
		FlightNumber:  booking.FlightNumber,
		PassengerName: booking.PassengerName,
	})

	return toResponse(booking, "Booking created successfully"), nil
}

func (s *BookingService) CancelBooking(ctx context.Context, pnr string) (*BookingResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	current, err := s.bookings.GetByPNR(storeCtx, pnr)
	cancel()
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled {
		return nil, domain.ErrAlreadyCancelled
	}

	// Compensate first, commit second: the status may only flip to
	// CANCELLED once the seat restoration is confirmed, so seats are
	// never silently leaked.
	restored, err := s.inventory.RestoreSeats(ctx, current.FlightID, current.Seats)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSeatRestorationFailed, err)
	}
	if !restored {
		return nil, domain.ErrSeatRestorationFailed
	}

	storeCtx, cancel = context.WithTimeout(ctx, s.storeTimeout)
	updated, err := s.bookings.UpdateStatus(storeCtx, pnr, domain.BookingStatusCancelled)
	cancel()
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking cancelled", zap.String("pnr", pnr))

	s.notifier.Enqueue(notify.EmailNotification{
		To:            updated.PassengerEmail,
		Subject:       email.CancellationSubject(updated.PNR),
		Body:          email.CancellationBody(updated),
		PNR:           updated.PNR,
		FlightNumber:  updated.FlightNumber,
		PassengerName: updated.PassengerName,
	})

	return toResponse(updated, "Booking cancelled successfully"), nil
}

func (s *BookingService) GetBookingByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.bookings.GetByPNR(storeCtx, pnr)
}

func (s *BookingService) GetBookingHistory(ctx context.Context, email string) ([]BookingResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	bookings, err := s.bookings.ListByEmail(storeCtx, email)
	if err != nil {
		return nil, err
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, *toResponse(&bookings[i], "Booking retrieved successfully"))
	}
	return responses, nil
}

// persistWithFreshPNR stores the booking, regenerating the PNR a
// bounded number of times if the store reports a duplicate. Random
// collisions are vanishingly rare, so a handful of retries is enough.
func (s *BookingService) persistWithFreshPNR(ctx context.Context, booking *domain.Booking) error {
	var err error
	for attempt := 0; attempt < s.pnrRetries; attempt++ {
		booking.PNR = GeneratePNR(s.pnrPrefix)

		storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
		err = s.bookings.Create(storeCtx, booking)
		cancel()
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicatePNR) {
			return err
		}
		s.logger.Warn("pnr collision, regenerating", zap.String("pnr", booking.PNR))
	}
	return err
}

// compensateStrandedSeats handles the one unrecoverable case: seats
// reduced remotely with no booking record. One compensating restore
// is attempted; either way the condition is logged with an alert tag
// for operator reconciliation.
func (s *BookingService) compensateStrandedSeats(ctx context.Context, booking *domain.Booking) {
	restored, err := s.inventory.RestoreSeats(ctx, booking.FlightID, booking.Seats)
	if err == nil && restored {
		s.logger.Error("booking persist failed after seat reservation, seats restored",
			zap.String("alert", "stranded_seats"),
			zap.Int64("flight_id", booking.FlightID),
			zap.Int("seats", booking.Seats))
		return
	}
	s.logger.Error("booking persist failed after seat reservation, compensating restore also failed",
		zap.String("alert", "stranded_seats_unrecovered"),
		zap.Int64("flight_id", booking.FlightID),
		zap.Int("seats", booking.Seats),
		zap.Error(err))
}

func validateCreateInput(input CreateBookingInput) error {
	if input.FlightID <= 0 {
		return errors.New("flight id is required")
	}
	if input.PassengerName == "" {
		return errors.New("passenger name is required")
	}
	if input.PassengerEmail == "" {
		return errors.New("passenger email is required")
	}
	if input.PassengerPhone == "" {
		return errors.New("passenger phone is required")
	}
	if input.Seats <= 0 {
		return errors.New("at least 1 seat is required")
	}
	return nil
}

func toResponse(b *domain.Booking, message string) *BookingResponse {
	date := b.BookingDate
	return &BookingResponse{
		PNR:              b.PNR,
		FlightNumber:     b.FlightNumber,
		PassengerName:    b.PassengerName,
		Seats:            b.Seats,
		TotalAmountCents: b.TotalAmountCents,
		Status:           b.Status,
		BookingDate:      &date,
		Message:          message,
	}
}

var _ BookingUseCase = (*BookingService)(nil)
