package hushbox

import (
	"math"
	"strconv"
	"time"
)

// DefaultLifetimeDays is the relative expiry applied when no expiry input is
// supplied at all. Together with MaxViews=1 it forms the product's baseline
// one-time-secret guarantee.
const DefaultLifetimeDays = 7

// allowedLifetimes are the accepted relative lifetime values in days.
var allowedLifetimes = map[int]bool{1: true, 3: true, 7: true, 14: true, 30: true}

// expiresAtLayouts are tried in order when parsing an absolute expiry input.
// The zoneless layouts are interpreted in the caller's local time, matching
// a datetime-local form field.
var expiresAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Policy is the normalized view-count/expiry limits attached to a secret.
type Policy struct {
	// MaxViews is the number of consuming retrievals allowed. Zero means
	// view counting is disabled: the secret stays retrievable until expiry.
	MaxViews int

	// ExpiresAt is the absolute expiry instant in epoch seconds. Zero means
	// no client-chosen expiry; the secret then lives under the server's
	// default retention, which is a server concern, not "unlimited".
	ExpiresAt int64
}

// PolicyInput carries raw user-supplied policy fields. All string fields are
// optional; malformed values fall back to defaults rather than failing, since
// they come from optional form input.
type PolicyInput struct {
	ViewCount     string
	LifetimeDays  string
	ExpiresAt     string
	DisableViews  bool
	DisableExpiry bool
}

// ResolvePolicy normalizes raw policy inputs, evaluated in precedence order:
//
//  1. DisableViews removes the view limit.
//  2. A parseable absolute expiry wins; any relative lifetime is discarded.
//  3. Otherwise DisableExpiry removes the client-chosen expiry.
//  4. Otherwise expiry is now plus the (sanitized) lifetime in days.
//
// With no inputs at all the result is MaxViews=1, ExpiresAt=now+7d.
func ResolvePolicy(in PolicyInput, now time.Time) Policy {
	var p Policy

	if !in.DisableViews {
		p.MaxViews = sanitizeViewCount(in.ViewCount)
	}

	if ts, ok := parseExpiresAt(in.ExpiresAt); ok {
		p.ExpiresAt = ts
		return p
	}

	if in.DisableExpiry {
		return p
	}

	days := sanitizeLifetimeDays(in.LifetimeDays)
	p.ExpiresAt = now.Add(time.Duration(days) * 24 * time.Hour).Unix()
	return p
}

// sanitizeViewCount accepts 1 through 9; anything else becomes 1.
func sanitizeViewCount(raw string) int {
	vc, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 1
	}
	vc = math.Abs(vc)
	if vc > 0 && vc < 10 {
		return int(vc)
	}
	return 1
}

// sanitizeLifetimeDays accepts 1, 3, 7, 14 or 30 days; anything else becomes 7.
func sanitizeLifetimeDays(raw string) int {
	days, err := strconv.Atoi(raw)
	if err != nil || !allowedLifetimes[days] {
		return DefaultLifetimeDays
	}
	return days
}

// parseExpiresAt converts an absolute expiry input to epoch seconds.
// Malformed input means "no absolute expiry supplied", never an error.
func parseExpiresAt(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	for _, layout := range expiresAtLayouts {
		var t time.Time
		var err error
		if layout == time.RFC3339 {
			t, err = time.Parse(layout, raw)
		} else {
			t, err = time.ParseInLocation(layout, raw, time.Local)
		}
		if err == nil {
			return t.Unix(), true
		}
	}
	return 0, false
}
