package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/takayama/storefront/internal/logger"
	"github.com/takayama/storefront/internal/order"
)

const (
	// StreamName is the in-memory stream holding recent announcements.
	StreamName = "storefront_tickets"

	subjectPrefix = "storefront.tickets"

	// SubjectAll matches every ticket announcement.
	SubjectAll = subjectPrefix + ".>"
)

// SubjectForKind returns the subject tickets of a kind are published on.
// Example: "storefront.tickets.server"
func SubjectForKind(kind order.Kind) string {
	return fmt.Sprintf("%s.%s", subjectPrefix, kind)
}

// SetupStream creates or updates the memory stream capturing announcements.
// Tickets are never persisted: the stream dies with the server.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectAll},
		Storage:  jetstream.MemoryStorage,
		MaxAge:   24 * time.Hour,
		MaxMsgs:  1000,
	})
}

// TicketEvent announces an issued ticket.
type TicketEvent struct {
	Reference  string       `json:"reference"`
	Kind       order.Kind   `json:"kind"`
	Total      order.Amount `json:"total"`
	ServerType string       `json:"server_type,omitempty"`
	Product    string       `json:"product,omitempty"`
	IssuedAt   time.Time    `json:"issued_at"`
}

// Announcer is told about every issued ticket.
type Announcer interface {
	TicketIssued(ctx context.Context, event TicketEvent)
}

// Nop discards announcements.
type Nop struct{}

func (Nop) TicketIssued(context.Context, TicketEvent) {}

// Multi forwards announcements to each announcer in order. Nil entries are
// skipped.
type Multi []Announcer

func (m Multi) TicketIssued(ctx context.Context, event TicketEvent) {
	for _, a := range m {
		if a != nil {
			a.TicketIssued(ctx, event)
		}
	}
}

// Bus publishes announcements to JetStream.
type Bus struct {
	js jetstream.JetStream
}

// NewBus creates a Bus on a JetStream context.
func NewBus(js jetstream.JetStream) *Bus {
	return &Bus{js: js}
}

// TicketIssued publishes the event. Failures are logged and dropped.
func (b *Bus) TicketIssued(ctx context.Context, event TicketEvent) {
	if event.IssuedAt.IsZero() {
		event.IssuedAt = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("events: marshaling ticket %s: %v", event.Reference, err)
		return
	}

	subject := SubjectForKind(event.Kind)
	ack, err := b.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Warn("events: publishing ticket %s to %s: %v", event.Reference, subject, err)
		return
	}
	logger.Debug("events: published ticket %s seq=%d", event.Reference, ack.Sequence)
}

// Subscribe delivers live announcements to handler. Malformed messages are
// skipped.
func Subscribe(nc *nats.Conn, handler func(TicketEvent)) (*nats.Subscription, error) {
	return nc.Subscribe(SubjectAll, func(msg *nats.Msg) {
		var event TicketEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logger.Warn("events: skipping malformed announcement on %s: %v", msg.Subject, err)
			return
		}
		handler(event)
	})
}

const recentInactiveThreshold = 30 * time.Second

// Recent returns the announcements still held by the stream, oldest first.
// Its consumer is deleted before returning.
func Recent(ctx context.Context, stream jetstream.Stream) ([]TicketEvent, error) {
	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject:     SubjectAll,
		DeliverPolicy:     jetstream.DeliverAllPolicy,
		AckPolicy:         jetstream.AckNonePolicy,
		// Reaps the consumer if the delete below never reaches the server.
		InactiveThreshold: recentInactiveThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("creating consumer: %w", err)
	}
	defer func() {
		name := consumer.CachedInfo().Name
		if err := stream.DeleteConsumer(context.WithoutCancel(ctx), name); err != nil {
			logger.Debug("events: deleting replay consumer %s: %v", name, err)
		}
	}()

	const batchSize = 100
	var out []TicketEvent
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			var event TicketEvent
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				logger.Warn("events: skipping malformed stored announcement: %v", err)
				continue
			}
			out = append(out, event)
		}

		if count < batchSize {
			break
		}
	}
	return out, nil
}
