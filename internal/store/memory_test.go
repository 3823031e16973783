package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hushbox/hushbox/internal/envelope"
)

func testRecord(id, verifier string, views int, expiresAt time.Time) *Record {
	return &Record{
		ID: id,
		Wire: &envelope.Wire{
			Verifier:      verifier,
			EncryptedData: "Y2lwaGVydGV4dA",
			Nonce:         "bm9uY2Vub25jZQ",
			Salt:          "c2FsdHNhbHRzYWx0c2E",
			Header:        "aHVzaGJveDp2MQ",
		},
		ViewLimited:    views > 0,
		RemainingViews: views,
		ExpiresAt:      expiresAt,
		CreatedAt:      time.Now(),
	}
}

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore(time.Minute)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMemoryStore_ConsumeBudget(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("id1", "ver", 2, time.Now().Add(time.Hour))
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		w, err := s.Consume(ctx, "id1", "ver")
		if err != nil {
			t.Fatalf("Consume() #%d error = %v", i+1, err)
		}
		if w.Verifier != "" {
			t.Error("served envelope leaks verifier")
		}
	}

	if _, err := s.Consume(ctx, "id1", "ver"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Consume() after budget error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_SaltFetchDoesNotConsume(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, testRecord("id1", "ver", 1, time.Now().Add(time.Hour)))

	// Two salt fetches, then the single allowed view still succeeds.
	for i := 0; i < 2; i++ {
		if _, err := s.GetSalt(ctx, "id1"); err != nil {
			t.Fatalf("GetSalt() error = %v", err)
		}
	}
	if _, err := s.Consume(ctx, "id1", "ver"); err != nil {
		t.Errorf("Consume() error = %v, want success after salt fetches", err)
	}
}

func TestMemoryStore_VerifierMismatchDoesNotConsume(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, testRecord("id1", "ver", 1, time.Now().Add(time.Hour)))

	if _, err := s.Consume(ctx, "id1", "wrong"); !errors.Is(err, ErrVerifierMismatch) {
		t.Fatalf("Consume() error = %v, want ErrVerifierMismatch", err)
	}
	if _, err := s.Consume(ctx, "id1", "ver"); err != nil {
		t.Errorf("Consume() error = %v, want success after mismatch", err)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, testRecord("dead", "ver", 1, time.Now().Add(-time.Hour)))

	if _, err := s.GetSalt(ctx, "dead"); !errors.Is(err, ErrExpired) {
		t.Errorf("GetSalt() error = %v, want ErrExpired", err)
	}
	if _, err := s.Consume(ctx, "dead", "ver"); !errors.Is(err, ErrExpired) {
		t.Errorf("Consume() error = %v, want ErrExpired even with correct verifier", err)
	}
}

func TestMemoryStore_UnlimitedViews(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, testRecord("id1", "ver", 0, time.Now().Add(time.Hour)))

	for i := 0; i < 5; i++ {
		if _, err := s.Consume(ctx, "id1", "ver"); err != nil {
			t.Fatalf("Consume() #%d error = %v", i+1, err)
		}
	}
}

func TestMemoryStore_ConcurrentConsume(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const budget = 3
	const callers = 20

	s.Save(ctx, testRecord("id1", "ver", budget, time.Now().Add(time.Hour)))

	var wg sync.WaitGroup
	var successes int32
	var mu sync.Mutex

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Consume(ctx, "id1", "ver"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != budget {
		t.Errorf("concurrent successes = %d, want exactly %d", successes, budget)
	}
}

func TestMemoryStore_Cleanup(t *testing.T) {
	s := NewMemoryStore(10 * time.Millisecond)
	defer s.Close()
	ctx := context.Background()

	s.Save(ctx, testRecord("dead", "ver", 1, time.Now().Add(-time.Second)))

	time.Sleep(50 * time.Millisecond)

	s.mu.RLock()
	_, exists := s.records["dead"]
	s.mu.RUnlock()
	if exists {
		t.Error("expired record not reaped")
	}
}
