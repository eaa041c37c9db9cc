// File: services/concierge/transcriptStore.go
package concierge

import (
	"context"
	"encoding/json"
	"time"

	"yadori/models"

	"github.com/go-redis/redis/v8"
)

const chatSessionPrefix = "chat:session:"

type RedisTranscriptStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTranscriptStore(client *redis.Client, ttl time.Duration) *RedisTranscriptStore {
	return &RedisTranscriptStore{client: client, ttl: ttl}
}

func (s *RedisTranscriptStore) Get(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	key := chatSessionPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session models.ChatSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisTranscriptStore) Save(ctx context.Context, sessionID string, session *models.ChatSession) error {
	key := chatSessionPrefix + sessionID
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisTranscriptStore) Delete(ctx context.Context, sessionID string) error {
	key := chatSessionPrefix + sessionID
	return s.client.Del(ctx, key).Err()
}
