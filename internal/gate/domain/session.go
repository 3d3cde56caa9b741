package domain

import "time"

// SessionRecord is the persisted proof of authentication: the bearer tokens,
// the user snapshot captured at login time, and the expiry.
//
// While PendingSecondFactor is true the record grants no capabilities; the
// authorization predicate must never treat it as authenticated, expired or
// not.
type SessionRecord struct {
	AccessToken         string     `json:"access_token"`
	RefreshToken        string     `json:"refresh_token"`
	User                UserRecord `json:"user"`
	ExpiresAt           time.Time  `json:"expires_at"`
	PendingSecondFactor bool       `json:"pending_second_factor,omitempty"`
}

// Expired reports whether the record is invalid at the given instant.
// A record is invalid at exactly ExpiresAt, not just after it.
func (s SessionRecord) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// CredentialRow is the durable-area row backing a persisted session: the
// encoded record plus a fingerprint of the refresh token and the expiry,
// so housekeeping can purge dead rows without decoding them.
type CredentialRow struct {
	Key                 string
	Encoded             string
	RefreshFingerprint  string
	ExpiresAt           time.Time
	PendingSecondFactor bool
	UpdatedAt           time.Time
}
