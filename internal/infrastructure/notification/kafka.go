package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes events keyed by entity id, so the events of one
// booking stay ordered within a partition.
type KafkaNotifier struct {
	writer messageWriter
	topic  string
	log    zerolog.Logger
}

var _ interfaces.INotifier = (*KafkaNotifier)(nil)

func NewKafkaNotifier(brokers []string, topic string, log zerolog.Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return newKafkaNotifier(writer, topic, log)
}

func newKafkaNotifier(w messageWriter, topic string, log zerolog.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: w,
		topic:  topic,
		log:    log.With().Str("component", "notifier").Str("transport", "kafka").Logger(),
	}
}

func (n *KafkaNotifier) Publish(ctx context.Context, ev entities.LifecycleEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.EntityID),
		Value: data,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.EventType)},
		},
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s to %s: %w", ev.EventType, n.topic, err)
	}
	n.log.Debug().Str("event_type", string(ev.EventType)).Str("entity_id", ev.EntityID).Msg("event published")
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// KafkaConsumer reads events in a consumer group and commits each message
// once its handler succeeded.
type KafkaConsumer struct {
	reader messageReader
	log    zerolog.Logger
}

func NewKafkaConsumer(brokers []string, groupID, topic string, log zerolog.Logger) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return newKafkaConsumer(reader, log)
}

func newKafkaConsumer(r messageReader, log zerolog.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		reader: r,
		log:    log.With().Str("component", "consumer").Str("transport", "kafka").Logger(),
	}
}

// Run blocks until ctx is done or the reader fails.
func (c *KafkaConsumer) Run(ctx context.Context, handle Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		ev, err := decodeEvent(msg.Value)
		if err != nil {
			c.log.Warn().Err(err).Int64("offset", msg.Offset).Msg("dropping undecodable event")
		} else if err := handle(ctx, ev); err != nil {
			return fmt.Errorf("handle %s: %w", ev.EventType, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
		}
	}
}

func (c *KafkaConsumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}
