package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const ingestionLockKey = "liquid-catalog:ingestion:lock"

// releaseScript deletes the lock only if it still carries the caller's token,
// so an expired holder cannot free a lock taken over by another process.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// IngestionLock serializes ingestion runs across every process sharing the
// same redis.
type IngestionLock struct {
	client *Client
	key    string
}

func NewIngestionLock(client *Client) *IngestionLock {
	return &IngestionLock{client: client, key: ingestionLockKey}
}

func (l *IngestionLock) Acquire(ctx context.Context, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("acquire ingestion lock: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (l *IngestionLock) Release(ctx context.Context, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
		return fmt.Errorf("release ingestion lock: %w", err)
	}
	return nil
}
