package crypto

import (
	"bytes"
	"fmt"
	"sync"
)

// Engine is the capability handle for key derivation and authenticated
// encryption. Protocol components receive an Engine by reference instead of
// consulting global state. The zero value is ready to use; the first
// operation triggers a one-time self-test shared by all callers.
type Engine struct {
	initOnce sync.Once
	initErr  error
}

// NewEngine returns an uninitialized engine. Initialization is lazy and
// exactly-once; call Init to force it eagerly.
func NewEngine() *Engine {
	return &Engine{}
}

// Init runs the engine self-test. Concurrent callers share one underlying
// initialization and all observe its outcome.
func (e *Engine) Init() error {
	e.initOnce.Do(func() {
		e.initErr = selfTest()
	})
	if e.initErr != nil {
		return fmt.Errorf("engine init: %w", e.initErr)
	}
	return nil
}

// selfTest proves the AEAD round-trips under a known key before the engine
// touches any real payload.
func selfTest() error {
	key := bytes.Repeat([]byte{0x42}, KeySize)
	nonce := bytes.Repeat([]byte{0x24}, NonceSize)
	plaintext := []byte("hushbox self test")

	ciphertext, err := Seal(key, nonce, FormatHeader, plaintext)
	if err != nil {
		return err
	}

	out, err := Open(key, nonce, FormatHeader, ciphertext)
	if err != nil {
		return err
	}
	if !bytes.Equal(out, plaintext) {
		return fmt.Errorf("self test round trip mismatch")
	}
	return nil
}

// EncryptionResult holds everything one create attempt produces. Salt and
// nonce are fresh per attempt; the passphrase is either caller-supplied or
// generated, never both.
type EncryptionResult struct {
	Ciphertext []byte
	Nonce      []byte
	Salt       []byte
	Header     []byte
	Verifier   string
	Passphrase string

	key []byte
}

// Key exposes the derived key for encrypting sibling fields (file metadata)
// under distinct nonces. It never leaves the creating device.
func (r *EncryptionResult) Key() []byte {
	return r.key
}

// Encrypt packages plaintext under a passphrase-derived key with a fresh salt
// and nonce. An empty passphrase requests a generated one.
func (e *Engine) Encrypt(plaintext []byte, passphrase string) (*EncryptionResult, error) {
	if err := e.Init(); err != nil {
		return nil, err
	}

	if passphrase == "" {
		generated, err := NewPassphrase()
		if err != nil {
			return nil, err
		}
		passphrase = generated
	}

	salt, err := NewSalt()
	if err != nil {
		return nil, err
	}
	nonce, err := NewNonce()
	if err != nil {
		return nil, err
	}

	key, err := DeriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	ciphertext, err := Seal(key, nonce, FormatHeader, plaintext)
	if err != nil {
		return nil, err
	}

	return &EncryptionResult{
		Ciphertext: ciphertext,
		Nonce:      nonce,
		Salt:       salt,
		Header:     FormatHeader,
		Verifier:   VerifierFromKey(key),
		Passphrase: passphrase,
		key:        key,
	}, nil
}

// Decrypt recovers plaintext from envelope parameters. The header comes from
// the envelope, not from this binary, so old envelopes keep their own suite.
func (e *Engine) Decrypt(ciphertext []byte, passphrase string, nonce, salt, header []byte) ([]byte, error) {
	if err := e.Init(); err != nil {
		return nil, err
	}

	key, err := DeriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	return Open(key, nonce, header, ciphertext)
}

// DeriveVerifier derives the verifier for a retrieval attempt.
func (e *Engine) DeriveVerifier(passphrase string, salt []byte) (string, error) {
	if err := e.Init(); err != nil {
		return "", err
	}
	return DeriveVerifier(passphrase, salt)
}

// DeriveKey derives the AES key for a retrieval attempt.
func (e *Engine) DeriveKey(passphrase string, salt []byte) ([]byte, error) {
	if err := e.Init(); err != nil {
		return nil, err
	}
	return DeriveKey(passphrase, salt)
}
