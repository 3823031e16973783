package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// randReader is the entropy source for all generated values.
// Tests may swap it via SetRandReaderForTesting.
var randReader io.Reader = rand.Reader

const (
	idAlphabet         = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	passphraseAlphabet = idAlphabet + "!#$%&*+-=?@_~"
)

// RandBytes returns length cryptographically random bytes.
func RandBytes(length int) ([]byte, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(randReader, buf); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return buf, nil
}

func randString(length int, alphabet string) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(randReader, max)
		if err != nil {
			return "", fmt.Errorf("read random index: %w", err)
		}
		result[i] = alphabet[n.Int64()]
	}
	return string(result), nil
}

// NewSecretID generates a URL-safe secret identifier.
func NewSecretID() (string, error) {
	return randString(SecretIDLength, idAlphabet)
}

// NewPassphrase generates a recipient-facing passphrase.
func NewPassphrase() (string, error) {
	return randString(PassphraseLength, passphraseAlphabet)
}

// NewSalt generates a fresh per-secret salt.
func NewSalt() ([]byte, error) {
	return RandBytes(SaltSize)
}

// NewNonce generates a fresh AES-GCM nonce.
func NewNonce() ([]byte, error) {
	return RandBytes(NonceSize)
}
