package entity

import "time"

// Seed is the encrypted TOTP seed for a user. Ciphertext is AES-GCM output
// bound to the owning user, never stored or logged in the clear.
type Seed struct {
	UserID     int64
	Ciphertext []byte
	KeyVersion int16 // key rotation version
	CreatedAt  time.Time
}

// AcceptedCode records a code that already completed a verification, keyed by
// its keyed hash. Rows exist to reject replays within the retention window.
type AcceptedCode struct {
	UserID     int64
	CodeHash   string
	AcceptedAt time.Time
}

// TrustedDevice is a device the user chose to skip the second factor on.
// TokenHash is the keyed hash of the opaque cookie token; the raw token is
// never persisted.
type TrustedDevice struct {
	ID          int64
	UserID      int64
	TokenHash   string
	DisplayName string
	OriginIP    string
	CreatedAt   time.Time
	LastUsedAt  time.Time
}

// Expired reports whether the trust window has passed. The server-side
// creation time is authoritative, the cookie expiry is advisory only.
func (d TrustedDevice) Expired(ttl time.Duration, now time.Time) bool {
	return now.After(d.CreatedAt.Add(ttl))
}
