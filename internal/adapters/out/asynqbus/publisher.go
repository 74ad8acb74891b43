// Package asynqbus provides an asynq-backed implementation of the event
// publisher port. Domain events are enqueued as Redis-persisted tasks keyed by
// topic, so downstream consumers (notification fan-out, analytics) pick them up
// without coupling dispatch transactions to their processing.
package asynqbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// taskEnqueuer is the asynq client surface the publisher depends on.
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqEventPublisher publishes domain events by enqueueing one asynq task per
// event. The task type is the event topic and the payload is the event
// serialized as JSON. Delivery is at-least-once; consumers must tolerate
// duplicates.
type AsynqEventPublisher struct {
	client taskEnqueuer
}

// NewAsynqEventPublisher creates a publisher over the given asynq client.
//
// Example:
//
//	client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
//	publisher := asynqbus.NewAsynqEventPublisher(client)
func NewAsynqEventPublisher(client taskEnqueuer) *AsynqEventPublisher {
	return &AsynqEventPublisher{client: client}
}

// Publish serializes the event and enqueues it under the topic.
// Callers treat failures as non-fatal: events are emitted after the owning
// transaction commits and never roll it back.
func (p *AsynqEventPublisher) Publish(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	task := asynq.NewTask(topic, payload)
	if _, err := p.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s event: %w", topic, err)
	}

	return nil
}
