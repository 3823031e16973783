// Package server is the reference hushbox server: it stores opaque envelopes
// and serves them back through the two-round-trip retrieve protocol. It never
// sees a passphrase, a key, or plaintext.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/hushbox/hushbox/config"
	"github.com/hushbox/hushbox/internal/api"
	"github.com/hushbox/hushbox/internal/crypto"
	"github.com/hushbox/hushbox/internal/envelope"
	"github.com/hushbox/hushbox/internal/store"
)

// Size ceilings mirror the client-side ones, with AEAD overhead allowed.
const (
	maxFileBody = 10*1024*1024 + crypto.TagSize
	maxTextBody = 1*1024*1024 + crypto.TagSize
	maxViews    = 9
)

var (
	secretIDRegex = regexp.MustCompile(`^[a-zA-Z0-9]{16}$`)
	verifierRegex = regexp.MustCompile(`^[a-f0-9]{64}$`)
)

type Handler struct {
	store  store.Store
	config *config.Config
}

func NewHandler(s store.Store, cfg *config.Config) *Handler {
	return &Handler{
		store:  s,
		config: cfg,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateText handles POST /encrypt.
func (h *Handler) CreateText(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, false)
}

// CreateFile handles POST /encrypt_file.
func (h *Handler) CreateFile(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, true)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, wantFile bool) {
	var wire envelope.Wire
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		h.error(w, http.StatusBadRequest, "invalid request")
		return
	}

	if wire.IsFile != wantFile {
		h.error(w, http.StatusBadRequest, "variant does not match endpoint")
		return
	}
	if !verifierRegex.MatchString(wire.Verifier) {
		h.error(w, http.StatusBadRequest, "missing or malformed verifier")
		return
	}

	// Structural validation only; the payload stays opaque.
	env, err := envelope.Decode(&wire)
	if err != nil {
		h.error(w, http.StatusBadRequest, "incomplete envelope")
		return
	}
	if wantFile && len(env.FileBody) > maxFileBody {
		h.error(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	if !wantFile && len(env.Data) > maxTextBody {
		h.error(w, http.StatusRequestEntityTooLarge, "secret too large")
		return
	}

	id, err := crypto.NewSecretID()
	if err != nil {
		h.internalError(w, err)
		return
	}

	rec := h.buildRecord(id, &wire)
	if err := h.store.Save(r.Context(), rec); err != nil {
		h.internalError(w, err)
		return
	}

	h.json(w, http.StatusOK, api.CreateResponse{SecretID: id})
}

// buildRecord normalizes policy fields into storage bookkeeping. A zero
// viewCount means the creator disabled view counting. A zero or too-distant
// ttl falls back to the configured retention bounds.
func (h *Handler) buildRecord(id string, wire *envelope.Wire) *store.Record {
	now := time.Now()

	views := wire.ViewCount
	if views < 0 || views > maxViews {
		views = 1
	}

	expiresAt := time.Unix(wire.TTL, 0)
	maxExpiry := now.Add(h.config.Secrets.MaxRetention)
	if wire.TTL <= 0 {
		expiresAt = now.Add(h.config.Secrets.DefaultRetention)
	} else if expiresAt.After(maxExpiry) {
		expiresAt = maxExpiry
	}

	return &store.Record{
		ID:             id,
		Wire:           wire,
		ViewLimited:    views > 0,
		RemainingViews: views,
		ExpiresAt:      expiresAt,
		CreatedAt:      now,
	}
}

// Retrieve handles POST /decrypt: both the salt fetch and the consuming
// payload fetch. Status mapping is fixed protocol surface: 404 for unknown,
// expired or exhausted ids; 401 for a verifier mismatch. Nothing else leaks.
func (h *Handler) Retrieve(w http.ResponseWriter, r *http.Request) {
	var req api.DecryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.SecretID == "" {
		h.error(w, http.StatusBadRequest, "missing secret_id")
		return
	}
	if !secretIDRegex.MatchString(req.SecretID) {
		h.error(w, http.StatusNotFound, "secret not found")
		return
	}

	if req.GetSalt {
		salt, err := h.store.GetSalt(r.Context(), req.SecretID)
		if err != nil {
			h.handleStoreError(w, err)
			return
		}
		h.json(w, http.StatusOK, api.SaltResponse{Salt: salt})
		return
	}

	if !verifierRegex.MatchString(req.Verifier) {
		h.error(w, http.StatusBadRequest, "missing or malformed verifier")
		return
	}

	served, err := h.store.Consume(r.Context(), req.SecretID, req.Verifier)
	if err != nil {
		h.handleStoreError(w, err)
		return
	}

	h.json(w, http.StatusOK, served)
}

func (h *Handler) json(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) error(w http.ResponseWriter, status int, message string) {
	h.json(w, status, map[string]string{"error": message})
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	log.Printf("internal error: %v", err)
	h.error(w, http.StatusInternalServerError, "an internal error occurred")
}

func (h *Handler) handleStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrExpired):
		h.error(w, http.StatusNotFound, "secret not found")
	case errors.Is(err, store.ErrVerifierMismatch):
		h.error(w, http.StatusUnauthorized, "invalid passphrase")
	default:
		h.internalError(w, err)
	}
}
