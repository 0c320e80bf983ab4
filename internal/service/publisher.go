// Package service publishes plan lifecycle events to RabbitMQ.  Publishing
// is best effort: errors are logged and returned, and callers ignore them
// so an unreachable broker never fails a request.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/exam-seating-planner/internal/queue"
)

// EventPublisher sends plan events.
type EventPublisher interface {
	PublishPlanEvent(ctx context.Context, ev queue.PlanEvent) error
}

// RabbitPublisher dials the broker for every event.  Plan changes are
// rare admin actions, so there is no connection to keep alive.
type RabbitPublisher struct {
	URL   string
	Queue string
}

func NewRabbitPublisher(url, queueName string) *RabbitPublisher {
	return &RabbitPublisher{URL: url, Queue: queueName}
}

// PublishPlanEvent declares the durable queue and publishes ev as a
// persistent JSON message on the default exchange.
func (p *RabbitPublisher) PublishPlanEvent(ctx context.Context, ev queue.PlanEvent) error {
	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(5 * time.Second)})
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

	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         ev.Type,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}); err != nil {
		log.Printf("rabbitmq: publish %s failed: %v", ev.Type, err)
		return err
	}
	return nil
}

// NopPublisher drops every event.  It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) PublishPlanEvent(context.Context, queue.PlanEvent) error { return nil }
