package hushbox

import (
	"sync"

	"github.com/google/uuid"
)

// attemptTracker tags each create or retrieve attempt with an identity so
// that late results from superseded attempts can be discarded instead of
// being applied. Starting a new attempt supersedes the previous one.
type attemptTracker struct {
	mu      sync.Mutex
	current string
}

// begin registers a new attempt and returns its id.
func (t *attemptTracker) begin() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = uuid.NewString()
	return t.current
}

// stillCurrent reports whether the attempt has not been superseded.
func (t *attemptTracker) stillCurrent(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current == id
}

// session owns exactly one retrieval attempt: the secret id, the passphrase
// entered by the recipient, and the salt and verifier once derived. It is
// destroyed after one terminal outcome and never reused; a retry constructs
// a fresh session so stale salt or key material cannot leak across attempts.
type session struct {
	attemptID  string
	secretID   string
	passphrase string

	salt     []byte
	verifier string
}
