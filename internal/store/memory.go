package store

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/hushbox/hushbox/internal/envelope"
)

// Compile-time interface check
var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps records in a map, for single-node and test deployments.
// A background loop reaps expired records; Consume enforces expiry inline as
// well, so reaping latency never extends a secret's life.
type MemoryStore struct {
	records       map[string]*Record
	mu            sync.RWMutex
	cleanupCancel context.CancelFunc
}

func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	ctx, cancel := context.WithCancel(context.Background())
	s := &MemoryStore{
		records:       make(map[string]*Record),
		cleanupCancel: cancel,
	}
	go s.cleanupLoop(ctx, cleanupInterval)
	return s
}

func (s *MemoryStore) Save(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.ID] = rec
	return nil
}

func (s *MemoryStore) GetSalt(ctx context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return "", ErrNotFound
	}
	if rec.expired(time.Now()) {
		return "", ErrExpired
	}
	return rec.Wire.Salt, nil
}

func (s *MemoryStore) Consume(ctx context.Context, id, verifier string) (*envelope.Wire, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	if rec.expired(time.Now()) {
		delete(s.records, id)
		return nil, ErrExpired
	}

	if subtle.ConstantTimeCompare([]byte(rec.Wire.Verifier), []byte(verifier)) != 1 {
		return nil, ErrVerifierMismatch
	}

	if rec.ViewLimited {
		if rec.RemainingViews <= 0 {
			delete(s.records, id)
			return nil, ErrNotFound
		}
		rec.RemainingViews--
		if rec.RemainingViews == 0 {
			delete(s.records, id)
		}
	}

	return rec.served(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

func (s *MemoryStore) Close() error {
	if s.cleanupCancel != nil {
		s.cleanupCancel()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	return nil
}

func (s *MemoryStore) cleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, rec := range s.records {
		if rec.expired(now) {
			delete(s.records, id)
		}
	}
}
