package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"event_marketplace/internal/domain/entities"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() entities.LifecycleEvent {
	return entities.LifecycleEvent{
		EventType:   entities.EventBookingDepositPaid,
		EntityID:    "b-1",
		Status:      "DEPOSIT_PAID",
		ClientEmail: "ana@example.com",
		OccurredAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type fakeReader struct {
	msgs      []kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		return kafka.Message{}, context.Canceled
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func TestKafkaNotifierPublish(t *testing.T) {
	w := &fakeWriter{}
	n := newKafkaNotifier(w, "marketplace.lifecycle", zerolog.Nop())

	require.NoError(t, n.Publish(context.Background(), sampleEvent()))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("b-1"), w.msgs[0].Key)
	assert.Equal(t, "event_type", w.msgs[0].Headers[0].Key)

	var got entities.LifecycleEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, sampleEvent(), got)

	w.err = errors.New("broker down")
	assert.Error(t, n.Publish(context.Background(), sampleEvent()))
}

func TestKafkaConsumerRun(t *testing.T) {
	body, err := json.Marshal(sampleEvent())
	require.NoError(t, err)
	r := &fakeReader{msgs: []kafka.Message{
		{Offset: 1, Value: body},
		{Offset: 2, Value: []byte("not json")},
		{Offset: 3, Value: body},
	}}
	c := newKafkaConsumer(r, zerolog.Nop())

	handled := 0
	err = c.Run(context.Background(), func(_ context.Context, ev entities.LifecycleEvent) error {
		handled++
		assert.Equal(t, "b-1", ev.EntityID)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, handled)
	assert.Equal(t, []int64{1, 2, 3}, r.committed)
}

func TestKafkaConsumerStopsOnHandlerError(t *testing.T) {
	body, _ := json.Marshal(sampleEvent())
	r := &fakeReader{msgs: []kafka.Message{{Offset: 7, Value: body}}}
	c := newKafkaConsumer(r, zerolog.Nop())

	err := c.Run(context.Background(), func(context.Context, entities.LifecycleEvent) error {
		return errors.New("smtp down")
	})
	assert.Error(t, err)
	assert.Empty(t, r.committed)
}

type fakePublisher struct {
	exchange, key string
	msg           amqp.Publishing
}

func (p *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	p.exchange, p.key, p.msg = exchange, key, msg
	return nil
}

func TestRabbitNotifierPublish(t *testing.T) {
	p := &fakePublisher{}
	n := newRabbitNotifier(p, "marketplace.lifecycle", zerolog.Nop())

	require.NoError(t, n.Publish(context.Background(), sampleEvent()))
	assert.Equal(t, "marketplace.lifecycle", p.exchange)
	assert.Equal(t, "booking.deposit_paid", p.key)
	assert.Equal(t, "application/json", p.msg.ContentType)
	assert.Equal(t, amqp.Persistent, p.msg.DeliveryMode)
}

type fakeAcknowledger struct {
	acked, nacked, rejected []uint64
}

func (a *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	a.acked = append(a.acked, tag)
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, _ bool, _ bool) error {
	a.nacked = append(a.nacked, tag)
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, _ bool) error {
	a.rejected = append(a.rejected, tag)
	return nil
}

func TestConsumeDeliveries(t *testing.T) {
	body, _ := json.Marshal(sampleEvent())
	ack := &fakeAcknowledger{}
	deliveries := make(chan amqp.Delivery, 3)
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body}
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte("{")}
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 3, Body: body}
	close(deliveries)

	calls := 0
	err := consumeDeliveries(context.Background(), deliveries, func(context.Context, entities.LifecycleEvent) error {
		calls++
		if calls == 2 {
			return errors.New("temporary")
		}
		return nil
	}, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Equal(t, []uint64{2}, ack.rejected)
	assert.Equal(t, []uint64{3}, ack.nacked)
}

func TestEmailSender(t *testing.T) {
	var buf bytes.Buffer
	s := NewEmailSender("no-reply@marketplace.local", zerolog.New(&buf).Level(zerolog.InfoLevel))

	require.NoError(t, s.Handle(context.Background(), sampleEvent()))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ana@example.com", entry["to"])
	assert.Equal(t, subjects[entities.EventBookingDepositPaid], entry["subject"])

	buf.Reset()
	quote := entities.LifecycleEvent{EventType: entities.EventQuoteSent, EntityID: "q-1"}
	require.NoError(t, s.Handle(context.Background(), quote))
	assert.Zero(t, buf.Len())
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))
	require.NoError(t, n.Publish(context.Background(), sampleEvent()))
	assert.Contains(t, buf.String(), `"event_type":"booking.deposit_paid"`)
}
