package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with AES-256-GCM under the given key, nonce and
// associated data. The nonce must be unique for this key.
func Seal(key, nonce, aad, plaintext []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	return aesGCM.Seal(nil, nonce, plaintext, aad), nil
}

// Open decrypts AES-256-GCM ciphertext. An authentication failure is reported
// as ErrDecryptionFailed without distinguishing tampering from a wrong key.
func Open(key, nonce, aad, ciphertext []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// SealDetached encrypts with a fresh random nonce and prepends it to the
// result: nonce (12 bytes) || ciphertext || tag (16 bytes). Used for fields
// that share a key with another ciphertext and therefore cannot share its nonce.
func SealDetached(key, aad, plaintext []byte) ([]byte, error) {
	nonce, err := RandBytes(NonceSize)
	if err != nil {
		return nil, err
	}

	ciphertext, err := Seal(key, nonce, aad, plaintext)
	if err != nil {
		return nil, err
	}

	return append(nonce, ciphertext...), nil
}

// OpenDetached decrypts a self-framing blob produced by SealDetached.
func OpenDetached(key, aad, blob []byte) ([]byte, error) {
	if len(blob) < NonceSize+TagSize {
		return nil, ErrCiphertextTooShort
	}
	return Open(key, blob[:NonceSize], aad, blob[NonceSize:])
}
