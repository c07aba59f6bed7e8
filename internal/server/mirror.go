package server

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisMirror publishes session events on a Redis channel per session.
type RedisMirror struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisMirror(rdb *redis.Client) *RedisMirror {
	return &RedisMirror{rdb: rdb, prefix: "feedmap:session:"}
}

// Channel returns the Redis channel carrying a session's events.
func (m *RedisMirror) Channel(sessionID string) string {
	return m.prefix + sessionID
}

func (m *RedisMirror) Mirror(ctx context.Context, sessionID string, data []byte) error {
	if err := m.rdb.Publish(ctx, m.Channel(sessionID), data).Err(); err != nil {
		return fmt.Errorf("publishing to %s: %w", m.Channel(sessionID), err)
	}
	return nil
}
