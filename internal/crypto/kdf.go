package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// DeriveKey derives the AES key from a passphrase and a per-secret salt.
func DeriveKey(passphrase string, salt []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSaltSize, len(salt), SaltSize)
	}

	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

// DeriveVerifier derives the server-side verifier from a passphrase and salt.
// It is the hex SHA-256 of the derived key, not the key itself, so the server
// can compare it without ever holding decryption material.
func DeriveVerifier(passphrase string, salt []byte) (string, error) {
	key, err := DeriveKey(passphrase, salt)
	if err != nil {
		return "", err
	}
	return VerifierFromKey(key), nil
}

// VerifierFromKey computes the verifier for an already-derived key.
func VerifierFromKey(key []byte) string {
	sum := sha256.Sum256(key)
	return hex.EncodeToString(sum[:])
}
