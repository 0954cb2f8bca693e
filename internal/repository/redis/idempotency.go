package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const processedKeyPrefix = "processed-event:"

// EventStore remembers handled event ids for a bounded time. It satisfies
// kafka.IdempotencyStore.
type EventStore struct {
	client *redis.Client
	group  string
	ttl    time.Duration
}

// NewEventStore scopes ids to a consumer group so two groups reading the
// same topic do not suppress each other.
func NewEventStore(client *redis.Client, group string, ttl time.Duration) *EventStore {
	return &EventStore{client: client, group: group, ttl: ttl}
}

func (s *EventStore) key(eventID string) string {
	return processedKeyPrefix + s.group + ":" + eventID
}

// Processed reports whether eventID was marked.
func (s *EventStore) Processed(ctx context.Context, eventID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists processed event: %w", err)
	}
	return n > 0, nil
}

// MarkProcessed records eventID.
func (s *EventStore) MarkProcessed(ctx context.Context, eventID string) error {
	if err := s.client.Set(ctx, s.key(eventID), 1, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis mark processed event: %w", err)
	}
	return nil
}
