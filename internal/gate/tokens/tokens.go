// Package tokens mints and verifies the bearer credentials embedded in
// session records: an HS256 JWT access token consumed by this service's own
// API, and an opaque refresh token reserved for renewal.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/herfa/gate/pkg/cryptox"
)

var ErrInvalidToken = errors.New("tokens: invalid token")

// Claims is the verified content of an access token.
type Claims struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// Manager signs and verifies access tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	issuer string
}

func NewManager(secret, issuer string) *Manager {
	return &Manager{secret: []byte(secret), issuer: issuer}
}

// MintAccessToken builds and signs an HS256 JWT carrying the subject, role
// and expiry.
func (m *Manager) MintAccessToken(userID, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iss":  m.issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates an access token, rejecting wrong algorithms,
// bad signatures, wrong issuers and expired tokens.
func (m *Manager) Verify(raw string) (Claims, error) {
	parsed, err := jwt.Parse(raw,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	role, _ := mc["role"].(string)
	if sub == "" || role == "" {
		return Claims{}, ErrInvalidToken
	}

	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: sub, Role: role, ExpiresAt: exp.Time}, nil
}

// NewRefreshToken returns an opaque 256-bit random token. Only its
// fingerprint is written to durable storage.
func NewRefreshToken() (string, error) {
	return cryptox.GenerateToken(cryptox.TokenSize256)
}
