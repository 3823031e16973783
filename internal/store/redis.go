package store

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/gob"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hushbox/hushbox/internal/envelope"
)

var _ Store = (*RedisStore)(nil)

// RedisStore persists records in Redis. Time expiry rides on the key TTL;
// the view budget is enforced with an optimistic WATCH transaction so that
// concurrent consuming fetches cannot both pass the final allowed view.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(options *redis.Options) (*RedisStore, error) {
	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Save(ctx context.Context, rec *Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	if rec.ExpiresAt.IsZero() {
		return r.client.Set(ctx, secretKey(rec.ID), data, 0).Err()
	}

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}
	return r.client.Set(ctx, secretKey(rec.ID), data, ttl).Err()
}

func (r *RedisStore) GetSalt(ctx context.Context, id string) (string, error) {
	data, err := r.client.Get(ctx, secretKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}

	rec, err := decodeRecord(data)
	if err != nil {
		return "", err
	}
	if rec.expired(time.Now()) {
		_ = r.Delete(ctx, id)
		return "", ErrExpired
	}
	return rec.Wire.Salt, nil
}

func (r *RedisStore) Consume(ctx context.Context, id, verifier string) (*envelope.Wire, error) {
	key := secretKey(id)
	var served *envelope.Wire

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			return err
		}

		rec, err := decodeRecord(data)
		if err != nil {
			return err
		}

		if rec.expired(time.Now()) {
			return ErrExpired
		}

		if subtle.ConstantTimeCompare([]byte(rec.Wire.Verifier), []byte(verifier)) != 1 {
			return ErrVerifierMismatch
		}

		if rec.ViewLimited && rec.RemainingViews <= 0 {
			return ErrNotFound
		}

		served = rec.served()

		if !rec.ViewLimited {
			return nil
		}

		rec.RemainingViews--
		newData, err := encodeRecord(rec)
		if err != nil {
			return err
		}

		ttl := tx.TTL(ctx, key).Val()
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if rec.RemainingViews <= 0 {
				pipe.Del(ctx, key)
			} else if ttl > 0 {
				pipe.Set(ctx, key, newData, ttl)
			} else {
				pipe.Set(ctx, key, newData, 0)
			}
			return nil
		})
		return err
	}

	for i := 0; i < 3; i++ {
		err := r.client.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return served, nil
		case errors.Is(err, redis.TxFailedErr):
			// Another consumer raced us; re-read and retry.
			served = nil
			continue
		case errors.Is(err, ErrExpired):
			_ = r.Delete(ctx, id)
			return nil, err
		default:
			return nil, err
		}
	}

	return nil, redis.TxFailedErr
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, secretKey(id)).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Helpers

func secretKey(id string) string {
	return "secret:" + id
}

func encodeRecord(rec *Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
