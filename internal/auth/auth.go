package auth

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrInvalidToken covers bad signatures, expiry, issuer or audience mismatch and malformed tokens
	ErrInvalidToken = errors.New("invalid token")
	// ErrKeySetUnavailable means the provider's public keys could not be fetched
	ErrKeySetUnavailable = errors.New("identity provider key set unavailable")
)

// Claims is the decoded payload of a verified token
type Claims map[string]any

// Subject returns the sub claim, or "" when it is absent or not a string
func (c Claims) Subject() string {
	sub, _ := c["sub"].(string)
	return strings.TrimSpace(sub)
}

// String returns a string claim, or "" when it is absent
func (c Claims) String(key string) string {
	v, _ := c[key].(string)
	return v
}

// Verifier validates a bearer token and returns its claims
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// VerifierFunc adapts a function to the Verifier interface
type VerifierFunc func(ctx context.Context, token string) (Claims, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Claims, error) {
	return f(ctx, token)
}
