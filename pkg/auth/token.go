// Package auth issues and verifies the signed tokens that bind a browser to its session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// ErrInvalidToken is returned for tokens that fail signature, issuer or expiry checks.
var ErrInvalidToken = errors.New("invalid session token")

type Verifier interface {
	Verify(ctx context.Context, tokenString string) (string, error)
}

type Signer interface {
	Sign(sessionID string) (string, error)
}

// TokenManager signs and verifies HS256 session tokens.
// The token subject carries the session id.
type TokenManager struct {
	key    jwk.Key
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager for the given shared secret.
func NewTokenManager(secret, issuer string, ttl time.Duration) (*TokenManager, error) {
	key, err := jwk.Import([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to import session signing key: %w", err)
	}
	return &TokenManager{
		key:    key,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Sign returns a compact JWS whose subject is sessionID.
func (m *TokenManager) Sign(sessionID string) (string, error) {
	now := m.now()
	tok, err := jwt.NewBuilder().
		Issuer(m.issuer).
		Subject(sessionID).
		JwtID(uuid.NewString()).
		IssuedAt(now).
		Expiration(now.Add(m.ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build session token: %w", err)
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return string(signed), nil
}

// Verify checks the token and returns the session id it carries.
func (m *TokenManager) Verify(_ context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		// Standard validation checks - expiration, not before, etc.
		jwt.WithValidate(true),
		jwt.WithIssuer(m.issuer),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	sub, ok := token.Subject()
	if !ok || sub == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return sub, nil
}
