package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hushbox/hushbox/internal/crypto"
)

func validText() *Envelope {
	return &Envelope{
		Data:      []byte("ciphertext"),
		Nonce:     bytes.Repeat([]byte{0x01}, crypto.NonceSize),
		Salt:      bytes.Repeat([]byte{0x02}, crypto.SaltSize),
		Header:    crypto.FormatHeader,
		Verifier:  "abc123",
		MaxViews:  1,
		ExpiresAt: 1900000000,
	}
}

func validFile() *Envelope {
	e := validText()
	e.IsFile = true
	e.Data = nil
	e.FileBody = []byte("encrypted file body")
	e.Metadata = []byte("encrypted metadata blob")
	return e
}

func TestEncodeDecode_Text(t *testing.T) {
	in := validText()

	out, err := Decode(in.Encode())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if out.IsFile {
		t.Error("IsFile = true, want false")
	}
	if !bytes.Equal(out.Data, in.Data) {
		t.Errorf("Data = %q, want %q", out.Data, in.Data)
	}
	if !bytes.Equal(out.Nonce, in.Nonce) || !bytes.Equal(out.Salt, in.Salt) {
		t.Error("nonce or salt did not round-trip")
	}
	if !bytes.Equal(out.Header, in.Header) {
		t.Errorf("header = %q, want %q round-tripped unchanged", out.Header, in.Header)
	}
	if out.MaxViews != 1 || out.ExpiresAt != 1900000000 {
		t.Errorf("policy fields = (%d, %d), want (1, 1900000000)", out.MaxViews, out.ExpiresAt)
	}
}

func TestEncodeDecode_File(t *testing.T) {
	in := validFile()

	w := in.Encode()
	if w.EncryptedData != "" {
		t.Error("file variant must not carry encryptedData")
	}
	if w.EncryptedFile == "" || w.EncryptedMetadata == "" {
		t.Fatal("file variant must carry encryptedFile and encryptedMetadata")
	}

	out, err := Decode(w)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !out.IsFile {
		t.Error("IsFile = false, want true")
	}
	if !bytes.Equal(out.FileBody, in.FileBody) {
		t.Error("file body did not round-trip")
	}
	if !bytes.Equal(out.Metadata, in.Metadata) {
		t.Error("metadata did not round-trip")
	}
}

func TestEncode_ForeignHeaderRoundTrips(t *testing.T) {
	in := validText()
	in.Header = []byte("some-future-suite:v9")

	out, err := Decode(in.Encode())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(out.Header, in.Header) {
		t.Errorf("header = %q, want opaque round-trip of %q", out.Header, in.Header)
	}
}

func TestDecode_FailsClosed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Wire)
		want   error
	}{
		{"text missing data", func(w *Wire) { w.EncryptedData = "" }, ErrMissingField},
		{"missing nonce", func(w *Wire) { w.Nonce = "" }, ErrMissingField},
		{"missing salt", func(w *Wire) { w.Salt = "" }, ErrMissingField},
		{"missing header", func(w *Wire) { w.Header = "" }, ErrMissingField},
		{"garbage nonce", func(w *Wire) { w.Nonce = "!!!" }, ErrBadEncoding},
		{"short nonce", func(w *Wire) { w.Nonce = crypto.ToBase64URL([]byte("xy")) }, ErrBadFieldSize},
		{"short salt", func(w *Wire) { w.Salt = crypto.ToBase64URL([]byte("xy")) }, ErrBadFieldSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validText().Encode()
			tt.mutate(w)
			if _, err := Decode(w); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecode_FileVariantFailsClosed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Wire)
	}{
		{"missing file body", func(w *Wire) { w.EncryptedFile = "" }},
		{"missing metadata", func(w *Wire) { w.EncryptedMetadata = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validFile().Encode()
			tt.mutate(w)
			if _, err := Decode(w); !errors.Is(err, ErrMissingField) {
				t.Errorf("Decode() error = %v, want ErrMissingField", err)
			}
		})
	}

	// A file flagged as text must not decode using file fields.
	w := validFile().Encode()
	w.IsFile = false
	if _, err := Decode(w); !errors.Is(err, ErrMissingField) {
		t.Errorf("Decode() error = %v, want ErrMissingField for variant mismatch", err)
	}
}

// The JSON key names are protocol surface shared with every deployed peer.
func TestWireFieldNames(t *testing.T) {
	data, err := json.Marshal(validFile().Encode())
	if err != nil {
		t.Fatal(err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{
		"passwordHash", "encryptedFile", "encryptedMetadata",
		"nonce", "salt", "header", "viewCount", "ttl", "isFile",
	} {
		if _, ok := fields[name]; !ok {
			t.Errorf("wire JSON missing field %q", name)
		}
	}

	data, err = json.Marshal(validText().Encode())
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	if _, ok := fields["encryptedData"]; !ok {
		t.Error(`wire JSON missing field "encryptedData"`)
	}
}
