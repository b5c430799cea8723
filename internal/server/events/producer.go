// Package events publishes domain events to kafka when a broker is
// configured. Publishing is best-effort: a broker outage is logged and the
// originating request is never failed.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	w   *kafka.Writer
	log *slog.Logger
}

func NewProducer(brokers []string, log *slog.Logger) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Publish serializes the event and writes it to the topic. Errors are
// logged, not returned.
func (p *Producer) Publish(ctx context.Context, topic, key string, event any) {
	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("event_marshal_failed", "topic", topic, "error", err)
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		p.log.Error("event_publish_failed", "topic", topic, "key", key, "error", err)
	}
}

func (p *Producer) Close() error { return p.w.Close() }
