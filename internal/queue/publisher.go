// Package queue publishes domain events to RabbitMQ for downstream
// consumers (audit trails, digests). Publishing is best-effort: errors are
// logged and returned so callers can ignore them without interrupting the
// request flow, and a nil Publisher discards everything.
package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher emits events to RabbitMQ. The zero-cost nil Publisher is valid
// and drops all events, so deployments without a broker just leave AMQP_URL
// unset.
type Publisher struct {
	url string
}

// NewPublisher returns a publisher for the given AMQP URL, or nil when the
// URL is empty.
func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url}
}

// PublishSwapDecided emits a SwapDecidedEvent.
func (p *Publisher) PublishSwapDecided(ctx context.Context, event SwapDecidedEvent) error {
	return p.publish(ctx, QueueSwapDecided, event)
}

// PublishItemModerated emits an ItemModeratedEvent.
func (p *Publisher) PublishItemModerated(ctx context.Context, event ItemModeratedEvent) error {
	return p.publish(ctx, QueueItemModerated, event)
}

// PublishUserTrust emits a UserTrustEvent.
func (p *Publisher) PublishUserTrust(ctx context.Context, event UserTrustEvent) error {
	return p.publish(ctx, QueueUserTrust, event)
}

// publish declares the queue (idempotent, durable) and sends one persistent
// JSON message on the default exchange.
func (p *Publisher) publish(ctx context.Context, queueName string, event interface{}) error {
	if p == nil {
		return nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
