// Package notify provides change-notification bus implementations behind the
// Notifier port: a Redis pub/sub adapter for multi-instance deployments and
// an in-process fallback for single-instance runs and tests.
package notify

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
)

// RedisNotifier publishes and subscribes through Redis pub/sub so change
// notifications reach subscribers on every instance.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) portsrepo.Notifier {
	return &RedisNotifier{client: client}
}

var _ portsrepo.Notifier = (*RedisNotifier)(nil)

// Publish emits a message on the channel. The payload carries no information;
// subscribers re-read the current value set on receipt.
func (n *RedisNotifier) Publish(ctx context.Context, channel string) error {
	return n.client.Publish(ctx, channel, "").Err()
}

// Subscribe opens a Redis subscription and adapts it to a signal channel.
// The returned cancel is idempotent; after it returns no more signals are
// delivered.
func (n *RedisNotifier) Subscribe(ctx context.Context, channel string) (<-chan struct{}, func(), error) {
	pubsub := n.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	out := make(chan struct{}, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		msgs := pubsub.Channel()
		for {
			select {
			case <-done:
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				// Coalesce: one pending signal is enough, the subscriber
				// re-reads everything anyway.
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}
	return out, cancel, nil
}
