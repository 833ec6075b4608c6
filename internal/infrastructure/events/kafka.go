package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// MessageWriter là phần của *kafka.Writer mà publisher cần, cho phép mock trong tests
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConfig holds configuration parameters for the activity topic.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// KafkaPublisher publish event dạng JSON, key là ActorID để các event
// của cùng một account nằm chung partition và giữ thứ tự.
type KafkaPublisher struct {
	writer       MessageWriter
	topic        string
	writeTimeout time.Duration
}

func NewKafkaPublisher(cfg KafkaConfig) *KafkaPublisher {
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,

		// WriteMessages trả về ngay, lỗi broker chỉ được log ở Completion
		Async:      true,
		Completion: logCompletion,
	}

	log.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("[KAFKA] Publisher configured")
	return NewKafkaPublisherWithWriter(w, cfg.Topic, cfg.WriteTimeout)
}

func NewKafkaPublisherWithWriter(w MessageWriter, topic string, writeTimeout time.Duration) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic, writeTimeout: writeTimeout}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", e.Type, err)
	}

	// Client ngắt kết nối sau commit không được làm mất event
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.writeTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(e.ActorID.String()),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write event %s to %s: %w", e.Type, p.topic, err)
	}
	return nil
}

func logCompletion(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		log.Warn().
			Err(err).
			Str("key", string(m.Key)).
			Str("topic", m.Topic).
			Msg("[KAFKA] Async delivery failed")
	}
}

// Close flush các message async còn lại rồi đóng writer
func (p *KafkaPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
