package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"quizarena/internal/model"
)

// Snapshot is the client-safe view of an open session served on resume.
// It carries the owner's user id so a cache hit can still be ownership
// checked, and never contains correct answers.
type Snapshot struct {
	SessionID string                   `json:"sessionId"`
	UserID    string                   `json:"userId"`
	Questions []model.RedactedQuestion `json:"questions"`
}

type SessionCache interface {
	Set(ctx context.Context, snap *Snapshot) error
	Get(ctx context.Context, sessionID string) (*Snapshot, error)
	Delete(ctx context.Context, sessionID string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) Set(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "quiz:session:"+snap.SessionID, data, c.ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, sessionID string) (*Snapshot, error) {
	data, err := c.client.Get(ctx, "quiz:session:"+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *sessionCache) Delete(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, "quiz:session:"+sessionID).Err()
}
