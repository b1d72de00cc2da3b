package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"SONJUTOKTOK_BACK-END/internal/config"
)

// DevVerifier accepts HS256 tokens signed with a shared secret.
// It stands in for Cognito on developer machines and in integration tests.
type DevVerifier struct {
	secret []byte
	issuer string
}

// NewDevVerifier creates a DevVerifier from the dev auth settings
func NewDevVerifier(cfg config.DevAuthConfig) (*DevVerifier, error) {
	if cfg.Secret == "" {
		return nil, errors.New("dev auth secret is required")
	}
	return &DevVerifier{secret: []byte(cfg.Secret), issuer: cfg.Issuer}, nil
}

func (v *DevVerifier) Verify(_ context.Context, token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	claims := jwt.MapClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, jwt.ErrTokenMalformed)
	}

	return Claims(claims), nil
}

// GenerateDevToken signs a token that DevVerifier accepts.
// Extra claims are copied into the payload before the registered ones.
func GenerateDevToken(subject string, cfg config.DevAuthConfig, extra map[string]any) (string, error) {
	if cfg.Secret == "" {
		return "", errors.New("dev auth secret is required")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	now := time.Now()
	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	if subject != "" {
		claims["sub"] = subject
	}
	claims["iat"] = jwt.NewNumericDate(now)
	claims["nbf"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(ttl))
	if cfg.Issuer != "" {
		claims["iss"] = cfg.Issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}
