// Package queue fans out registration events to downstream workers through a
// named Redis list.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Queue enqueues an item for downstream consumption. Best-effort: callers
// log failures and move on; delivery guarantees live with the consumer model.
type Queue interface {
	Enqueue(ctx context.Context, item any) error
}

// Noop discards every item. Used when no broker is configured.
type Noop struct{}

// Enqueue does nothing.
func (Noop) Enqueue(context.Context, any) error { return nil }

// Redis appends JSON-encoded items to the right end of a named list.
type Redis struct {
	client redis.Cmdable
	name   string
}

// NewRedis constructs a queue writing to the given list name.
func NewRedis(client redis.Cmdable, name string) *Redis {
	return &Redis{client: client, name: name}
}

// Enqueue RPUSHes the item as UTF-8 JSON. Non-ASCII text is preserved as-is;
// workers on the other side expect readable payloads.
func (q *Redis) Enqueue(ctx context.Context, item any) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode queue item: %w", err)
	}
	if err := q.client.RPush(ctx, q.name, payload).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", q.name, err)
	}
	return nil
}
