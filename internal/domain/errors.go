package domain

import "errors"

// Domain errors are recovered at the HTTP boundary into a FAILED
// response body. None of them are retried automatically.
var (
	ErrFlightNotFound        = errors.New("flight not found")
	ErrInsufficientSeats     = errors.New("insufficient seats available")
	ErrSeatReservationFailed = errors.New("failed to reduce seats")
	ErrSeatRestorationFailed = errors.New("failed to restore seats")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrAlreadyCancelled      = errors.New("booking already cancelled")
	ErrDuplicatePNR          = errors.New("pnr already exists")

	// ErrRemoteUnavailable means the inventory service could not be
	// reached at all, as opposed to a well-formed negative answer.
	ErrRemoteUnavailable = errors.New("inventory service unavailable")

	// ErrBookingPersist is returned when the store rejects a booking
	// after seats were already reserved remotely (stranded seats).
	ErrBookingPersist = errors.New("failed to persist booking")
)
