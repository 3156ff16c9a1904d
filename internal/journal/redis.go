package journal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/alchemorsel-crafter/internal/models"
)

// redisKey is the list holding serialized entries, newest first
const redisKey = "crafter:generations"

// RedisRecorder keeps the newest maxEntries entries in a Redis list
type RedisRecorder struct {
	client     *redis.Client
	maxEntries int
}

// NewRedisRecorder wraps a connected client
func NewRedisRecorder(client *redis.Client, maxEntries int) *RedisRecorder {
	return &RedisRecorder{client: client, maxEntries: maxEntries}
}

func (r *RedisRecorder) Record(ctx context.Context, g *models.Generation) error {
	prepare(g)

	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal generation: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, redisKey, data)
	pipe.LTrim(ctx, redisKey, 0, int64(r.maxEntries-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// Recent returns the newest entries first
func (r *RedisRecorder) Recent(ctx context.Context, limit int) ([]models.Generation, error) {
	raw, err := r.client.LRange(ctx, redisKey, 0, int64(ClampLimit(limit)-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}

	entries := make([]models.Generation, 0, len(raw))
	for _, item := range raw {
		var g models.Generation
		if err := json.Unmarshal([]byte(item), &g); err != nil {
			return nil, fmt.Errorf("failed to unmarshal generation: %w", err)
		}
		entries = append(entries, g)
	}
	return entries, nil
}

func (r *RedisRecorder) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRecorder) Close() error {
	return r.client.Close()
}

func (r *RedisRecorder) Driver() string { return "redis" }
