package hushbox

import (
	"net/http"
	"strconv"
	"time"
)

// Option configures the client.
type Option func(*clientConfig)

// CreateOption configures one create attempt.
type CreateOption func(*createConfig)

// clientConfig holds configuration for the client.
type clientConfig struct {
	httpClient *http.Client
	timeout    time.Duration
}

// createConfig holds configuration for secret creation.
type createConfig struct {
	passphrase string
	policy     PolicyInput
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout. Transport timeouts surface as
// TransportError like any other transport failure.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithPassphrase uses a caller-chosen passphrase instead of a generated one.
// A given attempt uses exactly one of the two modes.
func WithPassphrase(passphrase string) CreateOption {
	return func(c *createConfig) {
		c.passphrase = passphrase
	}
}

// WithMaxViews sets how many consuming retrievals are allowed (1-9).
func WithMaxViews(n int) CreateOption {
	return func(c *createConfig) {
		c.policy.ViewCount = strconv.Itoa(n)
		c.policy.DisableViews = false
	}
}

// WithUnlimitedViews disables view counting; the secret stays retrievable
// until it expires.
func WithUnlimitedViews() CreateOption {
	return func(c *createConfig) {
		c.policy.DisableViews = true
	}
}

// WithLifetimeDays sets a relative expiry (1, 3, 7, 14 or 30 days).
// Ignored when an absolute expiry is also supplied.
func WithLifetimeDays(days int) CreateOption {
	return func(c *createConfig) {
		c.policy.LifetimeDays = strconv.Itoa(days)
		c.policy.DisableExpiry = false
	}
}

// WithExpiresAt sets an absolute expiry instant. Absolute wins over any
// relative lifetime.
func WithExpiresAt(t time.Time) CreateOption {
	return func(c *createConfig) {
		c.policy.ExpiresAt = t.Format(time.RFC3339)
	}
}

// WithNoExpiry disables the client-chosen expiry. The secret then lives
// under the server's default retention.
func WithNoExpiry() CreateOption {
	return func(c *createConfig) {
		c.policy.DisableExpiry = true
		c.policy.ExpiresAt = ""
		c.policy.LifetimeDays = ""
	}
}

// WithPolicyInput replaces the raw policy inputs wholesale. Intended for
// callers that forward user-entered form values unchanged.
func WithPolicyInput(in PolicyInput) CreateOption {
	return func(c *createConfig) {
		c.policy = in
	}
}
