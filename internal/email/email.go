package email

import (
	"context"
	"fmt"
	"time"

	"github.com/flightapp/booking/internal/domain"
	"github.com/flightapp/booking/internal/notify"
	"go.uber.org/zap"
)

// ConfirmationSubject builds the subject line for a confirmed booking.
func ConfirmationSubject(pnr string) string {
	return "Flight Booking Confirmation - " + pnr
}

// CancellationSubject builds the subject line for a cancelled booking.
func CancellationSubject(pnr string) string {
	return "Flight Booking Cancellation - " + pnr
}

// ConfirmationBody renders the confirmation e-mail text for a booking.
func ConfirmationBody(b *domain.Booking) string {
	return fmt.Sprintf(`Dear %s,

Your flight booking has been confirmed!

Booking Details:
PNR: %s
Flight Number: %s
Number of Seats: %d
Total Amount: Rs. %.2f
Booking Date: %s

Thank you for choosing our service!

Best Regards,
Flight Booking Team`,
		b.PassengerName,
		b.PNR,
		b.FlightNumber,
		b.Seats,
		float64(b.TotalAmountCents)/100,
		b.BookingDate.Format(time.RFC3339),
	)
}

// CancellationBody renders the cancellation e-mail text for a booking.
func CancellationBody(b *domain.Booking) string {
	return fmt.Sprintf(`Dear %s,

Your booking %s on flight %s has been cancelled.
The reserved seats have been released.

Best Regards,
Flight Booking Team`,
		b.PassengerName,
		b.PNR,
		b.FlightNumber,
	)
}

// Sender delivers a queued notification. Actual SMTP delivery belongs
// to the downstream notification service; this sender only records
// the hand-off.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, notification notify.EmailNotification) error {
	s.logger.Info("delivering email notification",
		zap.String("to", notification.To),
		zap.String("subject", notification.Subject),
		zap.String("pnr", notification.PNR))
	return nil
}
