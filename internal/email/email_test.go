package email

import (
	"testing"
	"time"

	"github.com/flightapp/booking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestConfirmationBody(t *testing.T) {
	b := &domain.Booking{
		PNR:              "PNRA1B2C3D4",
		FlightNumber:     "FL-101",
		PassengerName:    "Jordan Shaw",
		Seats:            2,
		TotalAmountCents: 10000,
		BookingDate:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	body := ConfirmationBody(b)

	assert.Contains(t, body, "Dear Jordan Shaw")
	assert.Contains(t, body, "PNR: PNRA1B2C3D4")
	assert.Contains(t, body, "Flight Number: FL-101")
	assert.Contains(t, body, "Number of Seats: 2")
	assert.Contains(t, body, "Total Amount: Rs. 100.00")
}

func TestSubjects(t *testing.T) {
	assert.Equal(t, "Flight Booking Confirmation - PNRA1B2C3D4", ConfirmationSubject("PNRA1B2C3D4"))
	assert.Equal(t, "Flight Booking Cancellation - PNRA1B2C3D4", CancellationSubject("PNRA1B2C3D4"))
}

func TestCancellationBody(t *testing.T) {
	b := &domain.Booking{
		PNR:           "PNRA1B2C3D4",
		FlightNumber:  "FL-101",
		PassengerName: "Jordan Shaw",
	}

	body := CancellationBody(b)
	assert.Contains(t, body, "PNRA1B2C3D4")
	assert.Contains(t, body, "has been cancelled")
}
