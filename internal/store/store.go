// Package store is the server-side storage and expiry engine. It guarantees
// the protocol's consumption semantics: a verifier-matched fetch decrements
// the remaining-views budget atomically and is never double-counted or lost
// under concurrent fetches for the same identifier.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/hushbox/hushbox/internal/envelope"
)

var (
	// ErrNotFound is returned for unknown identifiers and for secrets whose
	// view budget is exhausted. The two are indistinguishable by design.
	ErrNotFound = errors.New("secret not found")

	// ErrExpired is returned for secrets past their expiry instant.
	// Handlers map it to the same recipient-visible outcome as ErrNotFound.
	ErrExpired = errors.New("secret has expired")

	// ErrVerifierMismatch is returned when the submitted verifier does not
	// match. No view is consumed.
	ErrVerifierMismatch = errors.New("verifier mismatch")
)

// Record is the stored form of a secret: the opaque envelope plus the
// bookkeeping the expiry engine needs. The envelope's verifier rides in
// Wire.Verifier and is compared, never served.
type Record struct {
	ID   string
	Wire *envelope.Wire

	// ViewLimited marks whether consuming fetches count against
	// RemainingViews. Unlimited secrets expire by time only.
	ViewLimited    bool
	RemainingViews int

	ExpiresAt time.Time
	CreatedAt time.Time
}

// Store persists envelopes and enforces at-most-N retrieval and time expiry.
type Store interface {
	// Save stores a new record under its id.
	Save(ctx context.Context, rec *Record) error

	// GetSalt returns the public salt for an id without any verifier check
	// and without consuming a view.
	GetSalt(ctx context.Context, id string) (string, error)

	// Consume atomically compares the verifier and, on a match, decrements
	// the view budget and returns the envelope. No two concurrent matched
	// calls may both succeed past the final allowed view. On a mismatch
	// the budget is untouched.
	Consume(ctx context.Context, id, verifier string) (*envelope.Wire, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	Close() error
}

// expired reports whether the record is past its expiry instant.
func (r *Record) expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt)
}

// served returns the envelope as the recipient may see it: verifier and
// policy bookkeeping stripped.
func (r *Record) served() *envelope.Wire {
	return &envelope.Wire{
		EncryptedData:     r.Wire.EncryptedData,
		EncryptedFile:     r.Wire.EncryptedFile,
		EncryptedMetadata: r.Wire.EncryptedMetadata,
		Nonce:             r.Wire.Nonce,
		Salt:              r.Wire.Salt,
		Header:            r.Wire.Header,
		IsFile:            r.Wire.IsFile,
	}
}
