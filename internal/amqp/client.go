// Package amqp carries insight generation triggers over RabbitMQ.
package amqp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"fincoach/internal/logger"
)

const publishTimeout = 5 * time.Second

// Handler processes one decoded trigger.
type Handler func(ctx context.Context, msg *GenerateInsightsMessage) error

// permanentError marks a handler failure that retrying cannot fix.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so the delivery is acknowledged instead of requeued.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was wrapped with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Outcome is what happened to a delivery.
type Outcome int

const (
	// Acked means the delivery was processed or permanently skipped.
	Acked Outcome = iota
	// Rejected means the body could not be decoded and was dropped.
	Rejected
	// Requeued means the handler failed transiently.
	Requeued
)

func (o Outcome) String() string {
	switch o {
	case Acked:
		return "acked"
	case Rejected:
		return "rejected"
	case Requeued:
		return "requeued"
	}
	return "unknown"
}

// Client publishes and consumes GenerateInsightsMessage on a durable direct
// exchange bound to a single queue.
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

// NewClient dials url and declares the exchange, queue and binding.
func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Routing key is the queue name.
	if err := c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	// One unacked trigger per worker; a run holds a model call open.
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	return nil
}

// PublishGenerateInsights publishes a persistent trigger for userID.
func (c *Client) PublishGenerateInsights(ctx context.Context, userID string) error {
	msg := NewGenerateInsightsMessage(userID)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.RequestedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	logger.Named("amqp").Debugw("published generate insights trigger", "user_id", userID, "queue", c.queueName)
	return nil
}

// ConsumeGenerateInsights delivers triggers to handler until ctx is done or
// the channel closes. Deliveries are acknowledged manually.
func (c *Client) ConsumeGenerateInsights(ctx context.Context, handler Handler) error {
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	log := logger.Named("amqp")
	log.Infow("started consuming generate insights triggers", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			log.Infow("stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return errors.New("message channel closed")
			}
			handleDelivery(ctx, delivery, handler)
		}
	}
}

// handleDelivery decodes one delivery, runs handler, and settles it:
// undecodable bodies are rejected without requeue, permanent failures and
// successes are acked, anything else is requeued.
func handleDelivery(ctx context.Context, delivery amqp091.Delivery, handler Handler) Outcome {
	log := logger.Named("amqp")

	msg, err := GenerateInsightsMessageFromJSON(delivery.Body)
	if err != nil {
		log.Errorw("failed to decode message", "error", err, "delivery_tag", delivery.DeliveryTag)
		settle(log.Errorw, delivery.Nack(false, false))
		return Rejected
	}

	log = log.With("user_id", msg.UserID)
	if err := handler(ctx, msg); err != nil {
		if IsPermanent(err) {
			log.Warnw("dropping message", "error", err)
			settle(log.Errorw, delivery.Ack(false))
			return Acked
		}
		log.Errorw("failed to handle message, requeueing", "error", err)
		settle(log.Errorw, delivery.Nack(false, true))
		return Requeued
	}

	settle(log.Errorw, delivery.Ack(false))
	log.Debugw("processed message")
	return Acked
}

func settle(logf func(msg string, keysAndValues ...interface{}), err error) {
	if err != nil {
		logf("failed to settle delivery", "error", err)
	}
}

// Close closes the channel and connection.
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
