package crypto

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	engine := NewEngine()
	plaintext := []byte("the launch code is 0000")

	result, err := engine.Encrypt(plaintext, "")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if result.Passphrase == "" {
		t.Fatal("expected a generated passphrase")
	}
	if len(result.Passphrase) != PassphraseLength {
		t.Errorf("passphrase length = %d, want %d", len(result.Passphrase), PassphraseLength)
	}
	if len(result.Salt) != SaltSize {
		t.Errorf("salt length = %d, want %d", len(result.Salt), SaltSize)
	}
	if len(result.Nonce) != NonceSize {
		t.Errorf("nonce length = %d, want %d", len(result.Nonce), NonceSize)
	}
	if !bytes.Equal(result.Header, FormatHeader) {
		t.Errorf("header = %q, want %q", result.Header, FormatHeader)
	}

	out, err := engine.Decrypt(result.Ciphertext, result.Passphrase, result.Nonce, result.Salt, result.Header)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if !bytes.Equal(out, plaintext) {
		t.Errorf("round trip = %q, want %q", out, plaintext)
	}
}

func TestEncrypt_CallerPassphrase(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Encrypt([]byte("payload"), "chosen-by-user")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if result.Passphrase != "chosen-by-user" {
		t.Errorf("passphrase = %q, want caller-supplied value", result.Passphrase)
	}
}

func TestDecrypt_WrongPassphrase(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Encrypt([]byte("payload"), "correct horse")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	_, err = engine.Decrypt(result.Ciphertext, "battery staple", result.Nonce, result.Salt, result.Header)
	if err != ErrDecryptionFailed {
		t.Errorf("Decrypt() error = %v, want ErrDecryptionFailed", err)
	}
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Encrypt([]byte("payload"), "pass")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	result.Ciphertext[0] ^= 0xff
	_, err = engine.Decrypt(result.Ciphertext, "pass", result.Nonce, result.Salt, result.Header)
	if err != ErrDecryptionFailed {
		t.Errorf("Decrypt() error = %v, want ErrDecryptionFailed", err)
	}
}

func TestEncrypt_FreshSaltAndNonce(t *testing.T) {
	engine := NewEngine()

	a, err := engine.Encrypt([]byte("one"), "pass")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	b, err := engine.Encrypt([]byte("two"), "pass")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if bytes.Equal(a.Salt, b.Salt) {
		t.Error("salt reused across attempts")
	}
	if bytes.Equal(a.Nonce, b.Nonce) {
		t.Error("nonce reused across attempts")
	}
}

func TestEngine_InitIdempotent(t *testing.T) {
	engine := NewEngine()

	const callers = 32
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = engine.Init()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("caller %d: Init() error = %v", i, err)
		}
	}
}

func TestDeriveVerifier_Properties(t *testing.T) {
	engine := NewEngine()
	salt := bytes.Repeat([]byte{0x01}, SaltSize)

	v1, err := engine.DeriveVerifier("passphrase", salt)
	if err != nil {
		t.Fatalf("DeriveVerifier() error = %v", err)
	}
	if len(v1) != 64 {
		t.Errorf("verifier length = %d, want 64 hex chars", len(v1))
	}
	if strings.ToLower(v1) != v1 {
		t.Error("verifier is not lowercase hex")
	}

	// Deterministic for the same inputs.
	v2, err := engine.DeriveVerifier("passphrase", salt)
	if err != nil {
		t.Fatalf("DeriveVerifier() error = %v", err)
	}
	if v1 != v2 {
		t.Error("verifier not deterministic")
	}

	// The verifier must differ from the key itself.
	key, err := engine.DeriveKey("passphrase", salt)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	if v1 == string(key) {
		t.Error("verifier equals raw key")
	}
}

func TestDeriveKey_BadSalt(t *testing.T) {
	if _, err := DeriveKey("pass", []byte("short")); err == nil {
		t.Error("expected error for wrong salt size")
	}
}
