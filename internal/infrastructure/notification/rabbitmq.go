package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitNotifier publishes events on a topic exchange with the event type as
// routing key.
type RabbitNotifier struct {
	conn     *amqp.Connection
	ch       amqpPublisher
	exchange string
	log      zerolog.Logger
}

var _ interfaces.INotifier = (*RabbitNotifier)(nil)

func NewRabbitNotifier(url, exchange string, log zerolog.Logger) (*RabbitNotifier, error) {
	conn, ch, err := dialExchange(url, exchange)
	if err != nil {
		return nil, err
	}
	n := newRabbitNotifier(ch, exchange, log)
	n.conn = conn
	return n, nil
}

func newRabbitNotifier(ch amqpPublisher, exchange string, log zerolog.Logger) *RabbitNotifier {
	return &RabbitNotifier{
		ch:       ch,
		exchange: exchange,
		log:      log.With().Str("component", "notifier").Str("transport", "rabbitmq").Logger(),
	}
}

func (n *RabbitNotifier) Publish(ctx context.Context, ev entities.LifecycleEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = n.ch.PublishWithContext(ctx, n.exchange, string(ev.EventType), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EntityID,
		Timestamp:    ev.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", ev.EventType, err)
	}
	n.log.Debug().Str("event_type", string(ev.EventType)).Str("entity_id", ev.EntityID).Msg("event published")
	return nil
}

func (n *RabbitNotifier) Close() error {
	if c, ok := n.ch.(*amqp.Channel); ok {
		_ = c.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

// RabbitConsumer binds a durable queue to every lifecycle routing key.
type RabbitConsumer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   zerolog.Logger
}

func NewRabbitConsumer(url, exchange, queue string, log zerolog.Logger) (*RabbitConsumer, error) {
	conn, ch, err := dialExchange(url, exchange)
	if err != nil {
		return nil, err
	}
	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "#", exchange, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}
	return &RabbitConsumer{
		conn:  conn,
		ch:    ch,
		queue: q.Name,
		log:   log.With().Str("component", "consumer").Str("transport", "rabbitmq").Logger(),
	}, nil
}

// Run blocks until ctx is done or the delivery channel closes.
func (c *RabbitConsumer) Run(ctx context.Context, handle Handler) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	return consumeDeliveries(ctx, deliveries, handle, c.log)
}

func (c *RabbitConsumer) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func consumeDeliveries(ctx context.Context, deliveries <-chan amqp.Delivery, handle Handler, log zerolog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			ev, err := decodeEvent(d.Body)
			if err != nil {
				log.Warn().Err(err).Str("routing_key", d.RoutingKey).Msg("dropping undecodable event")
				_ = d.Reject(false)
				continue
			}
			if err := handle(ctx, ev); err != nil {
				log.Error().Err(err).Str("event_type", string(ev.EventType)).Msg("handler failed, requeueing")
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func dialExchange(url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange: %w", err)
	}
	return conn, ch, nil
}
