package domain

import "time"

// UserRecord is the principal snapshot embedded in session records and
// returned by the directory. It is replaced wholesale on profile edits.
type UserRecord struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Role         Role         `json:"role"`
	IsActive     bool         `json:"is_active"`
	Permissions  []Permission `json:"permissions,omitempty"` // ADMIN only; ordered, duplicates ignored
	AvatarURL    string       `json:"avatar_url,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Language     string       `json:"language,omitempty"` // "ar" or "fr"
	GenderCode   string       `json:"gender,omitempty"`
	PasswordHash string       `json:"-"` // argon2id PHC string, never serialized

	// SecondFactorSecret is the base32 TOTP secret (nullable).
	// SecondFactorEnabled is when the second factor was enrolled (nullable).
	SecondFactorSecret  *string    `json:"-"`
	SecondFactorEnabled *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a copy safe to embed in a session record: credential and
// second-factor material stripped.
func (u UserRecord) Snapshot() UserRecord {
	u.PasswordHash = ""
	u.SecondFactorSecret = nil
	u.SecondFactorEnabled = nil
	return u
}
