package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSink publishes events to a per-user Redis channel so realtime
// frontends can subscribe to their own updates.
type RedisSink struct {
	client *redis.Client
}

func NewRedisSink(addr string) *RedisSink {
	return &RedisSink{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

func (s *RedisSink) Publish(ctx context.Context, userID, event string, payload any) error {
	body, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	channel := "user:" + userID + ":progress"
	if err := s.client.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}
