package crypto

import "errors"

var (
	// ErrDecryptionFailed is returned when the authentication tag does not
	// verify. It covers both a corrupted envelope and a wrong key.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrInvalidSaltSize is returned when the salt size is invalid.
	ErrInvalidSaltSize = errors.New("invalid salt size")

	// ErrCiphertextTooShort is returned when a self-framing blob is shorter
	// than a nonce plus an authentication tag.
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)
