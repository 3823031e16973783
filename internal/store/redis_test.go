package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// newRedisTestStore connects to a local Redis, skipping when none answers.
func newRedisTestStore(t *testing.T) *RedisStore {
	t.Helper()
	s, err := NewRedisStore(&redis.Options{Addr: "localhost:6379"})
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRedisStore_ConsumeFlow(t *testing.T) {
	s := newRedisTestStore(t)
	ctx := context.Background()

	rec := testRecord("redis-test-1", "ver", 1, time.Now().Add(time.Minute))
	defer s.Delete(ctx, rec.ID)

	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	salt, err := s.GetSalt(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetSalt() error = %v", err)
	}
	if salt != rec.Wire.Salt {
		t.Errorf("salt = %s, want %s", salt, rec.Wire.Salt)
	}

	if _, err := s.Consume(ctx, rec.ID, "wrong"); !errors.Is(err, ErrVerifierMismatch) {
		t.Fatalf("Consume(wrong) error = %v, want ErrVerifierMismatch", err)
	}

	w, err := s.Consume(ctx, rec.ID, "ver")
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if w.Verifier != "" {
		t.Error("served envelope leaks verifier")
	}

	if _, err := s.Consume(ctx, rec.ID, "ver"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Consume() after budget error = %v, want ErrNotFound", err)
	}
}

func TestRedisStore_ExpiredOnSave(t *testing.T) {
	s := newRedisTestStore(t)

	rec := testRecord("redis-test-2", "ver", 1, time.Now().Add(-time.Minute))
	if err := s.Save(context.Background(), rec); !errors.Is(err, ErrExpired) {
		t.Errorf("Save() error = %v, want ErrExpired", err)
	}
}
