package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/freitasmatheusrn/liquid-catalog/internal/ingestion"
	"github.com/redis/go-redis/v9"
)

const lastRunKey = "liquid-catalog:ingestion:last"

// RunStatusStore keeps the outcome of the latest ingestion run so every
// replica reports the same status.
type RunStatusStore struct {
	client *Client
	key    string
}

func NewRunStatusStore(client *Client) *RunStatusStore {
	return &RunStatusStore{client: client, key: lastRunKey}
}

func (s *RunStatusStore) SaveRun(ctx context.Context, status ingestion.RunStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encode run status: %w", err)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("save run status: %w", err)
	}
	return nil
}

// LastRun returns nil when no run was recorded yet.
func (s *RunStatusStore) LastRun(ctx context.Context) (*ingestion.RunStatus, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load run status: %w", err)
	}
	var status ingestion.RunStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return nil, fmt.Errorf("decode run status: %w", err)
	}
	return &status, nil
}
