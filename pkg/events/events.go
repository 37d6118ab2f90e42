package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"timetracker/models"
)

// EntryCreated is the payload written when a time entry is stored.
type EntryCreated struct {
	EventID    string           `json:"eventId"`
	Type       string           `json:"type"`
	Entry      models.TimeEntry `json:"entry"`
	OccurredAt time.Time        `json:"occurredAt"`
}

const TypeEntryCreated = "entry.created"

// NewEntryCreated wraps entry in an event with a fresh id.
func NewEntryCreated(entry models.TimeEntry, at time.Time) EntryCreated {
	return EntryCreated{
		EventID:    uuid.NewString(),
		Type:       TypeEntryCreated,
		Entry:      entry,
		OccurredAt: at.UTC(),
	}
}

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes entry events to a Kafka topic, keyed by entry date so a day's
// events stay on one partition.
type KafkaPublisher struct {
	writer MessageWriter
	now    func() time.Time
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		ErrorLogger:  kafka.LoggerFunc(log.Printf),
	})
}

func NewKafkaPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w, now: time.Now}
}

func (p *KafkaPublisher) PublishEntryCreated(ctx context.Context, entry models.TimeEntry) error {
	event := NewEntryCreated(entry, p.now())
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(entry.EntryDate.String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
			{Key: "event-id", Value: []byte(event.EventID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
