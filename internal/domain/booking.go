package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	// BookingStatusFailed is never persisted. It marks the degraded
	// response produced when a circuit breaker fallback fires.
	BookingStatusFailed BookingStatus = "FAILED"
)

type Booking struct {
	ID               string
	PNR              string
	FlightID         int64
	FlightNumber     string
	PassengerName    string
	PassengerEmail   string
	PassengerPhone   string
	Seats            int
	TotalAmountCents int64
	Status           BookingStatus
	BookingDate      time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
