package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ironsheep/fontfit-mcp/internal/report"
)

// KeyPrefix namespaces result keys.
const KeyPrefix = "fontfit:result:"

// RedisStore keeps results as JSON strings that expire after TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to url (redis://host:port/db) and pings it.
// A ttl of zero keeps results forever.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Save stores res under fontfit:result:<task id>.
func (s *RedisStore) Save(ctx context.Context, res *report.TaskResult) error {
	if res.TaskID == "" {
		return fmt.Errorf("invalid task id %q", res.TaskID)
	}
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := s.client.Set(ctx, KeyPrefix+res.TaskID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store result: %w", err)
	}
	return nil
}

// Load fetches the result for taskID.
func (s *RedisStore) Load(ctx context.Context, taskID string) (*report.TaskResult, error) {
	data, err := s.client.Get(ctx, KeyPrefix+taskID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("load result: %w", err)
	}

	var res report.TaskResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", taskID, err)
	}
	return &res, nil
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
