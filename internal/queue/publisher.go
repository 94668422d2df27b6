package queue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher pushes formatted notification messages onto a Redis list.
// The delivery bot on the other end pops messages and posts them to the
// chat channel; this process never talks to the chat service directly.
type Publisher struct {
	client    *redis.Client
	queueName string
}

// NewPublisher creates a new queue publisher
func NewPublisher(client *redis.Client, queueName string) *Publisher {
	if queueName == "" {
		queueName = "notifications:outbound"
	}
	return &Publisher{
		client:    client,
		queueName: queueName,
	}
}

// Publish pushes a single message to the queue
func (p *Publisher) Publish(ctx context.Context, message string) error {
	if err := p.client.LPush(ctx, p.queueName, message).Err(); err != nil {
		return fmt.Errorf("lpush: %w", err)
	}
	return nil
}

// QueueLength returns the number of undelivered messages
func (p *Publisher) QueueLength(ctx context.Context) (int64, error) {
	return p.client.LLen(ctx, p.queueName).Result()
}
