package checkin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"yadori/models"

	"github.com/go-redis/redis/v8"
)

const GuestSessionPrefix = "guestSession:"

const guestSessionTTL = 72 * time.Hour

// RedisPersister stores guest session records in Redis with a TTL. Records
// carry no version; unreadable payloads are reported as errors and the store
// falls back to defaults.
type RedisPersister struct {
	client *redis.Client
}

func NewRedisPersister(client *redis.Client) *RedisPersister {
	return &RedisPersister{client: client}
}

func (p *RedisPersister) Save(ctx context.Context, session models.GuestSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal guest session: %w", err)
	}
	if err := p.client.Set(ctx, GuestSessionPrefix+session.ID, data, guestSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save guest session: %w", err)
	}
	return nil
}

func (p *RedisPersister) Load(ctx context.Context, sessionID string) (*models.GuestSession, error) {
	data, err := p.client.Get(ctx, GuestSessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session models.GuestSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guest session: %w", err)
	}
	return &session, nil
}

func (p *RedisPersister) Delete(ctx context.Context, sessionID string) error {
	return p.client.Del(ctx, GuestSessionPrefix+sessionID).Err()
}
