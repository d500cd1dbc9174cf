package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher is the durable-queue contract the dispatcher writes to.
type Publisher interface {
	Publish(ctx context.Context, notification EmailNotification) error
}

// Producer publishes notifications onto a fixed topic with a fixed
// routing key prefix, one message per booking event.
type Producer struct {
	writer     *kafka.Writer
	topic      string
	routingKey string
}

func NewProducer(brokers []string, topic, routingKey string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return &Producer{writer: writer, topic: topic, routingKey: routingKey}
}

func (p *Producer) Publish(ctx context.Context, notification EmailNotification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := kafka.Message{
		Topic: p.topic,
		Key:   []byte(p.routingKey + "." + notification.PNR),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

var _ Publisher = (*Producer)(nil)
