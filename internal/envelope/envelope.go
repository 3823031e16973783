// Package envelope builds and parses the wire representation of an encrypted
// secret. The codec is purely structural: it validates presence, encoding and
// sizes of the fields each variant needs, and round-trips the format header
// opaquely. It never touches keys or plaintext.
package envelope

import (
	"errors"
	"fmt"

	"github.com/hushbox/hushbox/internal/crypto"
)

var (
	// ErrMissingField is returned when a structure lacks a field its
	// declared variant requires. Decode fails closed instead of guessing.
	ErrMissingField = errors.New("envelope missing required field")

	// ErrBadEncoding is returned when a wire field is not valid base64.
	ErrBadEncoding = errors.New("envelope field is not valid base64")

	// ErrBadFieldSize is returned when a decoded field has the wrong size.
	ErrBadFieldSize = errors.New("envelope field has wrong size")
)

// Wire is the JSON form of an envelope as submitted, stored and served.
// Field names are part of the protocol and must not change.
type Wire struct {
	Verifier          string `json:"passwordHash,omitempty"`
	EncryptedData     string `json:"encryptedData,omitempty"`
	EncryptedFile     string `json:"encryptedFile,omitempty"`
	EncryptedMetadata string `json:"encryptedMetadata,omitempty"`
	Nonce             string `json:"nonce"`
	Salt              string `json:"salt"`
	Header            string `json:"header"`
	ViewCount         int    `json:"viewCount,omitempty"`
	TTL               int64  `json:"ttl,omitempty"`
	IsFile            bool   `json:"isFile"`
}

// Envelope is the decoded transmissible unit. For the text variant Data holds
// the single ciphertext. For the file variant FileBody holds the encrypted
// file and Metadata the self-framing encrypted filename/media-type blob,
// carried separately so the server can route the body without decrypting it.
type Envelope struct {
	IsFile   bool
	Data     []byte
	FileBody []byte
	Metadata []byte

	Nonce  []byte
	Salt   []byte
	Header []byte

	// Policy fields and verifier ride along on create; the server strips
	// the verifier before serving the envelope back.
	Verifier  string
	MaxViews  int
	ExpiresAt int64
}

// Encode serializes an envelope for transmission.
func (e *Envelope) Encode() *Wire {
	w := &Wire{
		Verifier:  e.Verifier,
		Nonce:     crypto.ToBase64URL(e.Nonce),
		Salt:      crypto.ToBase64URL(e.Salt),
		Header:    crypto.ToBase64URL(e.Header),
		ViewCount: e.MaxViews,
		TTL:       e.ExpiresAt,
		IsFile:    e.IsFile,
	}
	if e.IsFile {
		w.EncryptedFile = crypto.ToBase64URL(e.FileBody)
		w.EncryptedMetadata = crypto.ToBase64URL(e.Metadata)
	} else {
		w.EncryptedData = crypto.ToBase64URL(e.Data)
	}
	return w
}

// Decode reconstructs an envelope, rejecting structures that lack any field
// the declared variant needs for decryption. This is a data-integrity check,
// not a cryptographic one.
func Decode(w *Wire) (*Envelope, error) {
	if w.Nonce == "" || w.Salt == "" || w.Header == "" {
		return nil, fmt.Errorf("%w: nonce, salt and header are required", ErrMissingField)
	}

	nonce, err := decodeField("nonce", w.Nonce, crypto.NonceSize)
	if err != nil {
		return nil, err
	}
	salt, err := decodeField("salt", w.Salt, crypto.SaltSize)
	if err != nil {
		return nil, err
	}
	header, err := decodeField("header", w.Header, 0)
	if err != nil {
		return nil, err
	}

	e := &Envelope{
		IsFile:    w.IsFile,
		Nonce:     nonce,
		Salt:      salt,
		Header:    header,
		Verifier:  w.Verifier,
		MaxViews:  w.ViewCount,
		ExpiresAt: w.TTL,
	}

	if w.IsFile {
		if w.EncryptedFile == "" || w.EncryptedMetadata == "" {
			return nil, fmt.Errorf("%w: file variant needs encryptedFile and encryptedMetadata", ErrMissingField)
		}
		if e.FileBody, err = decodeField("encryptedFile", w.EncryptedFile, 0); err != nil {
			return nil, err
		}
		if e.Metadata, err = decodeField("encryptedMetadata", w.EncryptedMetadata, 0); err != nil {
			return nil, err
		}
		return e, nil
	}

	if w.EncryptedData == "" {
		return nil, fmt.Errorf("%w: text variant needs encryptedData", ErrMissingField)
	}
	if e.Data, err = decodeField("encryptedData", w.EncryptedData, 0); err != nil {
		return nil, err
	}
	return e, nil
}

// decodeField base64-decodes a wire field, enforcing size when wantSize > 0.
func decodeField(name, value string, wantSize int) ([]byte, error) {
	data, err := crypto.FromBase64URL(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadEncoding, name)
	}
	if wantSize > 0 && len(data) != wantSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, want %d", ErrBadFieldSize, name, len(data), wantSize)
	}
	return data, nil
}
