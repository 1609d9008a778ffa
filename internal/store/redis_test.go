package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	url := os.Getenv("FONTFIT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("FONTFIT_TEST_REDIS_URL not set")
	}
	s, err := NewRedisStore(context.Background(), url, time.Minute)
	if err != nil {
		t.Fatalf("NewRedisStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRedisStore_RoundTrip(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()
	id := uuid.NewString()

	if err := s.Save(ctx, sampleResult(id)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.TaskID != id || len(got.TextRegions) != 1 {
		t.Errorf("got %+v", got)
	}

	ttl, err := s.client.TTL(ctx, KeyPrefix+id).Result()
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL: got %v, want (0, 1m]", ttl)
	}
}

func TestRedisStore_NotFound(t *testing.T) {
	s := newTestRedisStore(t)
	_, err := s.Load(context.Background(), uuid.NewString())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error: got %v, want ErrNotFound", err)
	}
}

func TestNewRedisStore_BadURL(t *testing.T) {
	if _, err := NewRedisStore(context.Background(), "not a url", time.Minute); err == nil {
		t.Error("NewRedisStore should fail for a malformed URL")
	}
}
