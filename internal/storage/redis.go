package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStorage persists dialogue transcripts in Redis.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(addr string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStorage{
		client: rdb,
		logger: logger,
		ttl:    24 * time.Hour,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStorage) SaveTranscript(ctx context.Context, t *Transcript) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	data, err := json.Marshal(t)
	if err != nil {
		r.logger.Error("Failed to marshal transcript", "uuid", t.ID, "error", err)
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	key := "dialogue:" + t.ID.String()
	if err := r.client.Set(ctx, key, string(data), r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save transcript", "uuid", t.ID, "error", err)
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadTranscript(ctx context.Context, id uuid.UUID) (*Transcript, error) {
	key := "dialogue:" + id.String()
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			r.logger.Warn("Transcript not found", "uuid", id)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load transcript", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	var t Transcript
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		r.logger.Error("Failed to unmarshal transcript", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal transcript: %w", err)
	}
	return &t, nil
}
