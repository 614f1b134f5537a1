package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jmrodas/parkings-api/internal/logger"
)

// AMQPPublisher publishes events to a durable queue. Each publish dials its
// own connection; event volume is low and this keeps broker restarts from
// wedging a long-lived channel.
type AMQPPublisher struct {
	url   string
	queue string
}

var _ Publisher = (*AMQPPublisher)(nil)

// NewAMQPPublisher builds a publisher for the given broker URL and queue.
func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queue}
}

// Publish delivers one event as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	log := logger.FromContext(ctx)

	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Error().Err(err).Msg("error connecting to AMQP broker")
		return fmt.Errorf("error connecting to AMQP broker: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Error().Err(err).Msg("error opening AMQP channel")
		return fmt.Errorf("error opening AMQP channel: %w", err)
	}
	defer ch.Close()

	queue, err := ch.QueueDeclare(p.queue, true, false, false, false, nil)
	if err != nil {
		log.Error().Err(err).Msg("error declaring AMQP queue")
		return fmt.Errorf("error declaring AMQP queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling event: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", queue.Name, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		log.Error().Err(err).Msg("error publishing event")
		return fmt.Errorf("error publishing event: %w", err)
	}

	log.Debug().
		Str("recurso", event.Recurso).
		Str("accion", event.Accion).
		Int64("id", event.ID).
		Msg("resource event published")

	return nil
}
