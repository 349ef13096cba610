package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	publishTimeout = 5 * time.Second
	consumerTag    = "finance-audit"
	// prefetch bounds the unacknowledged audit events held by one consumer.
	prefetch = 16
)

var errDeliveriesClosed = errors.New("audit deliveries channel closed")

// topology is the broker layout for audit events: one durable direct
// exchange routing to one durable queue keyed by the queue name.
type topology struct {
	exchange string
	queue    string
}

func (t topology) declare(ch *amqp091.Channel) error {
	if err := ch.ExchangeDeclare(t.exchange, amqp091.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %q: %w", t.exchange, err)
	}
	if _, err := ch.QueueDeclare(t.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %q: %w", t.queue, err)
	}
	if err := ch.QueueBind(t.queue, t.queue, t.exchange, false, nil); err != nil {
		return fmt.Errorf("bind %q to %q: %w", t.queue, t.exchange, err)
	}
	return nil
}

// Client publishes and consumes audit events over AMQP. It implements Publisher.
type Client struct {
	conn *amqp091.Connection
	ch   *amqp091.Channel
	topo topology

	// publishing on one amqp091 channel must be serialised
	mu sync.Mutex
}

var _ Publisher = (*Client)(nil)

// NewClient dials url and declares the audit exchange and queue.
func NewClient(url, exchange, queue string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	c := &Client{conn: conn, ch: ch, topo: topology{exchange: exchange, queue: queue}}
	if err := c.topo.declare(ch); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// PublishAudit publishes e as a persistent JSON message.
func (c *Client) PublishAudit(ctx context.Context, e *AuditEvent) error {
	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.EventID,
		Timestamp:    e.OccurredAt,
		Type:         e.Entity + "." + e.Action,
		Body:         body,
	}

	pctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	c.mu.Lock()
	err = c.ch.PublishWithContext(pctx, c.topo.exchange, c.topo.queue, false, false, msg)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish audit event %s: %w", e.EventID, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("event_id", e.EventID).
		Str("type", msg.Type).
		Int64("entity_id", e.EntityID).
		Msg("audit event published")
	return nil
}

// ConsumeAudit delivers events to handler until ctx is cancelled or the
// broker closes the channel. Settlement follows settle.
func (c *Client) ConsumeAudit(ctx context.Context, handler func(context.Context, *AuditEvent) error) error {
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("set prefetch: %w", err)
	}
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.topo.queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %q: %w", c.topo.queue, err)
	}

	log := zerolog.Ctx(ctx)
	log.Info().Str("queue", c.topo.queue).Int("prefetch", prefetch).Msg("consuming audit events")
	for {
		select {
		case <-ctx.Done():
			log.Info().Err(ctx.Err()).Msg("audit consumer stopping")
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errDeliveriesClosed
			}
			_ = HandleDelivery(ctx, d, handler)
		}
	}
}

// Acknowledger is the subset of amqp091.Delivery used to settle a message.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// HandleDelivery decodes one delivery, runs handler and settles the message.
func HandleDelivery(ctx context.Context, d amqp091.Delivery, handler func(context.Context, *AuditEvent) error) error {
	return settle(ctx, d.Body, d, handler)
}

// settle acks handled events, drops undecodable ones and requeues the rest.
func settle(ctx context.Context, body []byte, ack Acknowledger, handler func(context.Context, *AuditEvent) error) error {
	log := zerolog.Ctx(ctx)
	e, err := AuditEventFromJSON(body)
	if err != nil {
		log.Error().Err(err).Msg("drop malformed audit event")
		_ = ack.Nack(false, false)
		return err
	}
	if err := handler(ctx, e); err != nil {
		log.Error().Err(err).Str("event_id", e.EventID).Msg("handle audit event")
		_ = ack.Nack(false, true)
		return err
	}
	return ack.Ack(false)
}

// Close closes the channel and the connection.
func (c *Client) Close() error {
	var errs []error
	if c.ch != nil {
		errs = append(errs, c.ch.Close())
	}
	if c.conn != nil {
		errs = append(errs, c.conn.Close())
	}
	return errors.Join(errs...)
}
