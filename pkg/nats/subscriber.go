package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"postboard-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler processes one bus event. A nil return acks the message;
// a non-nil return naks it for redelivery.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber consumes pipeline events from JetStream.
type Subscriber struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewSubscriber(url string) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js}, nil
}

// Subscribe registers a handler for a subject pattern on a durable
// consumer so no messages are lost across restarts. The subject carries
// the event code; its stream prefix is stripped before the handler sees
// the event.
func (s *Subscriber) Subscribe(subject string, durableName string, handler EventHandler) error {
	ctx := context.Background()

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, streamName, jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer %s: %w", durableName, err)
	}

	_, err = consumer.Consume(func(msg jetstream.Msg) {
		var payload map[string]interface{}
		if err := json.Unmarshal(msg.Data(), &payload); err != nil {
			log.Printf("Error unmarshalling event data on %s: %v", msg.Subject(), err)
			msg.Nak()
			return
		}

		event := events.New(strings.TrimPrefix(msg.Subject(), subjectPrefix), payload)

		if err := handler(context.Background(), event); err != nil {
			log.Printf("Handler failed for event %s: %v", event.EventType(), err)
			msg.Nak() // Retry
			return
		}

		msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	log.Printf("Subscribed to %s with durable %s", subject, durableName)
	return nil
}

// Close closes the connection.
func (s *Subscriber) Close() {
	if s.nc != nil {
		s.nc.Close()
	}
}
