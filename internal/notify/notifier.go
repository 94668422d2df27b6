package notify

import (
	"context"
	"fmt"

	"github.com/apprentice-alert/go-scraper/internal/queue"
)

// Notifier delivers one formatted message block
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// StdoutNotifier prints messages to standard output, for running under
// a job runner that captures output (or piping into a delivery script)
type StdoutNotifier struct{}

func (StdoutNotifier) Notify(ctx context.Context, message string) error {
	fmt.Println(message)
	return nil
}

// QueueNotifier hands messages to the Redis delivery queue
type QueueNotifier struct {
	publisher *queue.Publisher
}

// NewQueueNotifier creates a notifier backed by publisher
func NewQueueNotifier(publisher *queue.Publisher) *QueueNotifier {
	return &QueueNotifier{publisher: publisher}
}

func (n *QueueNotifier) Notify(ctx context.Context, message string) error {
	return n.publisher.Publish(ctx, message)
}

// Multi fans one message out to several notifiers, keeping the first
// error after attempting all of them
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, message string) error {
	var firstErr error
	for _, n := range m {
		if err := n.Notify(ctx, message); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
