package hushbox

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/hushbox/hushbox/internal/api"
	"github.com/hushbox/hushbox/internal/crypto"
	"github.com/hushbox/hushbox/internal/envelope"
)

// Client drives the zero-knowledge exchange protocol against a hushbox
// server. Each create or retrieve call is one sequential attempt; starting a
// new attempt before a prior one resolves supersedes it, and the superseded
// attempt's result is discarded.
type Client struct {
	apiClient *api.Client
	engine    *crypto.Engine
	attempts  attemptTracker
}

// New creates a client for the given server base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var apiOpts []api.Option
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}

	apiClient, err := api.New(baseURL, apiOpts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiClient: apiClient,
		engine:    crypto.NewEngine(),
	}, nil
}

// CreateText encrypts a text secret locally and stores the envelope.
// The plaintext never leaves this device.
func (c *Client) CreateText(ctx context.Context, text string, opts ...CreateOption) (*StoredSecret, error) {
	if text == "" {
		return nil, &ValidationError{Message: "secret text is empty"}
	}
	if len(text) > MaxTextSize {
		return nil, &ValidationError{Message: fmt.Sprintf("secret text exceeds %d bytes", MaxTextSize)}
	}

	cfg := applyCreateOptions(opts)
	attemptID := c.attempts.begin()
	policy := ResolvePolicy(cfg.policy, time.Now())

	result, err := c.engine.Encrypt([]byte(text), cfg.passphrase)
	if err != nil {
		return nil, wrapCryptoError("encrypt", err)
	}

	env := &envelope.Envelope{
		Data:      result.Ciphertext,
		Nonce:     result.Nonce,
		Salt:      result.Salt,
		Header:    result.Header,
		Verifier:  result.Verifier,
		MaxViews:  policy.MaxViews,
		ExpiresAt: policy.ExpiresAt,
	}

	return c.submit(ctx, attemptID, env, result.Passphrase, policy)
}

// CreateFile encrypts a file secret locally and stores the envelope. The
// size ceiling is checked before any cryptographic work; a file of exactly
// MaxFileSize is accepted. Filename and media type travel encrypted,
// separately from the body, so the server can route without decrypting.
func (c *Client) CreateFile(ctx context.Context, filename, mediaType string, data []byte, opts ...CreateOption) (*StoredSecret, error) {
	if len(data) == 0 {
		return nil, &ValidationError{Message: "file is empty"}
	}
	if len(data) > MaxFileSize {
		return nil, &ValidationError{Message: fmt.Sprintf("file exceeds %d bytes", MaxFileSize)}
	}
	if filename == "" {
		return nil, &ValidationError{Message: "filename is empty"}
	}

	cfg := applyCreateOptions(opts)
	attemptID := c.attempts.begin()
	policy := ResolvePolicy(cfg.policy, time.Now())

	result, err := c.engine.Encrypt(data, cfg.passphrase)
	if err != nil {
		return nil, wrapCryptoError("encrypt", err)
	}

	metaPlain, err := encodeFileMetadata(filename, mediaType)
	if err != nil {
		return nil, wrapCryptoError("encode metadata", err)
	}

	// Same key as the body, own fresh nonce: the (key, nonce) pair is
	// never reused.
	metaBlob, err := crypto.SealDetached(result.Key(), result.Header, metaPlain)
	if err != nil {
		return nil, wrapCryptoError("encrypt metadata", err)
	}

	env := &envelope.Envelope{
		IsFile:    true,
		FileBody:  result.Ciphertext,
		Metadata:  metaBlob,
		Nonce:     result.Nonce,
		Salt:      result.Salt,
		Header:    result.Header,
		Verifier:  result.Verifier,
		MaxViews:  policy.MaxViews,
		ExpiresAt: policy.ExpiresAt,
	}

	return c.submit(ctx, attemptID, env, result.Passphrase, policy)
}

// submit transmits the envelope and assembles the shareable outcome.
// On any failure no secret id exists; a fresh attempt regenerates salt and
// nonce rather than resubmitting this envelope.
func (c *Client) submit(ctx context.Context, attemptID string, env *envelope.Envelope, passphrase string, policy Policy) (*StoredSecret, error) {
	id, err := c.apiClient.CreateSecret(ctx, env.Encode())
	if err != nil {
		return nil, wrapAPIError(err)
	}

	if !c.attempts.stillCurrent(attemptID) {
		return nil, ErrSuperseded
	}

	return &StoredSecret{
		ID:         id,
		Passphrase: passphrase,
		Policy:     policy,
	}, nil
}

// Reveal retrieves and decrypts a secret in two round trips. The first fetches
// the public salt (no passphrase involved, no view consumed); the second
// submits the locally derived verifier and, on a match, consumes a view and
// returns the envelope for local decryption. The passphrase itself never
// crosses the network.
func (c *Client) Reveal(ctx context.Context, secretID, passphrase string) (*RevealedSecret, error) {
	if secretID == "" {
		return nil, &ValidationError{Message: "secret id is empty"}
	}
	if passphrase == "" {
		return nil, &ValidationError{Message: "passphrase is empty"}
	}

	s := &session{
		attemptID:  c.attempts.begin(),
		secretID:   secretID,
		passphrase: passphrase,
	}

	saltB64, err := c.apiClient.GetSalt(ctx, s.secretID)
	if err != nil {
		return nil, wrapAPIError(err)
	}

	salt, err := crypto.FromBase64URL(saltB64)
	if err != nil || len(salt) != crypto.SaltSize {
		return nil, &TransportError{Err: fmt.Errorf("server returned a malformed salt")}
	}
	s.salt = salt

	key, err := c.engine.DeriveKey(s.passphrase, s.salt)
	if err != nil {
		return nil, wrapCryptoError("derive key", err)
	}
	s.verifier = crypto.VerifierFromKey(key)

	wire, err := c.apiClient.GetSecret(ctx, s.secretID, s.verifier)
	if err != nil {
		return nil, wrapAPIError(err)
	}

	env, err := envelope.Decode(wire)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("server returned an invalid envelope: %w", err)}
	}

	// The envelope's own salt is authoritative for decryption.
	if !bytes.Equal(env.Salt, s.salt) {
		if key, err = c.engine.DeriveKey(s.passphrase, env.Salt); err != nil {
			return nil, wrapCryptoError("derive key", err)
		}
	}

	revealed, err := decryptEnvelope(key, env)
	if err != nil {
		return nil, err
	}

	if !c.attempts.stillCurrent(s.attemptID) {
		return nil, ErrSuperseded
	}
	return revealed, nil
}

// decryptEnvelope performs the local decryption step. A tag mismatch here
// means a corrupted envelope or a passphrase that satisfied the verifier but
// not the key derivation; both surface as CryptoError, never as success.
func decryptEnvelope(key []byte, env *envelope.Envelope) (*RevealedSecret, error) {
	if !env.IsFile {
		plaintext, err := crypto.Open(key, env.Nonce, env.Header, env.Data)
		if err != nil {
			return nil, wrapCryptoError("decrypt", err)
		}
		return &RevealedSecret{Data: plaintext}, nil
	}

	metaPlain, err := crypto.OpenDetached(key, env.Header, env.Metadata)
	if err != nil {
		return nil, wrapCryptoError("decrypt metadata", err)
	}
	meta, err := decodeFileMetadata(metaPlain)
	if err != nil {
		return nil, wrapCryptoError("decrypt metadata", err)
	}

	body, err := crypto.Open(key, env.Nonce, env.Header, env.FileBody)
	if err != nil {
		return nil, wrapCryptoError("decrypt", err)
	}

	return &RevealedSecret{
		IsFile:    true,
		Data:      body,
		Filename:  meta.FileName,
		MediaType: meta.FileType,
	}, nil
}

func applyCreateOptions(opts []CreateOption) *createConfig {
	cfg := &createConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
