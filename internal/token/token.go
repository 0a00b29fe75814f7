package token

import (
	"errors"
	"fmt"
	"time"

	"admin-console/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the validity window of an issued access token.
const DefaultTTL = 2 * time.Hour

// ErrInvalidToken is returned when a token fails verification for any reason:
// bad signature, malformed structure, or expired validity window.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity asserted by an access token. Subject carries the
// user id; the remaining custom fields mirror the safe projection so the
// dashboard can render an identity without an extra round trip.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Manager signs and verifies access tokens with a shared HMAC secret.
// Tokens are stateless; there is no refresh or revocation mechanism, an
// expired token simply forces a new login.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Sign issues an HS256 token for the given user projection.
func (m *Manager) Sign(user models.SafeUser) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Username: user.Username,
		Role:     user.Role,
	})
	return t.SignedString(m.secret)
}

// Verify parses and validates a token string, returning its claims.
func (m *Manager) Verify(raw string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
