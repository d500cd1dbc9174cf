package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher decouples booking-commit latency from publish latency.
// Enqueue never blocks: when the bounded queue is full the
// notification is dropped and the drop is logged, never surfaced to
// the caller. Publish failures are likewise logged and swallowed —
// the booking is already committed and must not be rolled back over a
// notification.
type Dispatcher struct {
	publisher Publisher
	logger    *zap.Logger
	queue     chan EmailNotification

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(publisher Publisher, logger *zap.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	d := &Dispatcher{
		publisher: publisher,
		logger:    logger,
		queue:     make(chan EmailNotification, queueSize),
		done:      make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue submits a notification for asynchronous publishing.
func (d *Dispatcher) Enqueue(notification EmailNotification) {
	select {
	case d.queue <- notification:
	default:
		d.logger.Warn("notification queue full, dropping message",
			zap.String("pnr", notification.PNR),
			zap.String("to", notification.To))
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for notification := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := d.publisher.Publish(ctx, notification); err != nil {
			d.logger.Error("failed to publish notification",
				zap.String("pnr", notification.PNR),
				zap.Error(err))
		}
		cancel()
	}
}

// Close stops accepting work and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
		<-d.done
	})
}
