package hushbox

import (
	"errors"
	"fmt"

	"github.com/hushbox/hushbox/internal/api"
	"github.com/hushbox/hushbox/internal/crypto"
)

// Sentinel errors for errors.Is() checks. Every terminal failure of a create
// or retrieve attempt maps to exactly one category so callers can render
// distinct, non-leaking messages.
var (
	// ErrNotFound is returned when the secret id is unknown, expired, or
	// fully consumed. The three cases are indistinguishable by design.
	ErrNotFound = errors.New("secret not found, expired, or already viewed")

	// ErrInvalidPassphrase is returned when the server rejects the verifier.
	ErrInvalidPassphrase = errors.New("invalid passphrase")

	// ErrSuperseded is returned when a newer create or retrieve attempt was
	// started before this one resolved. The result is discarded, never
	// applied; the caller should ignore it.
	ErrSuperseded = errors.New("attempt superseded by a newer one")
)

// ValidationError reports invalid local input (empty secret, oversized file).
// It is raised before any cryptographic or network work and is recoverable
// by correcting the input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}

// CryptoError reports an engine failure: initialization, encryption, or a
// decryption whose authentication tag did not verify. It is fatal to the
// current attempt; a fresh attempt regenerates salt and nonce.
type CryptoError struct {
	Op  string
	Err error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("crypto failure during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *CryptoError) Unwrap() error {
	return e.Err
}

// TransportError reports a network or server failure unrelated to secret
// state. The user may retry; the SDK never retries automatically, since a
// replay after a partially-applied consuming request is unsafe.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// wrapAPIError converts transport-layer errors to the public taxonomy.
// Classification is by the transport's typed errors, never by message text.
func wrapAPIError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, api.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, api.ErrUnauthorized):
		return ErrInvalidPassphrase
	default:
		return &TransportError{Err: err}
	}
}

// wrapCryptoError tags an engine failure with the operation that raised it.
func wrapCryptoError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CryptoError{Op: op, Err: err}
}

// IsDecryptionFailure reports whether an error came from an authentication
// tag mismatch: either a corrupted envelope or a passphrase that satisfied
// the verifier but not the key derivation.
func IsDecryptionFailure(err error) bool {
	return errors.Is(err, crypto.ErrDecryptionFailed)
}
