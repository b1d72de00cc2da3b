package auth

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"SONJUTOKTOK_BACK-END/internal/config"
)

// CognitoVerifier checks user pool tokens against the pool's published JWKS
type CognitoVerifier struct {
	cache     *jwk.Cache
	jwksURL   string
	issuer    string
	clientID  string
	tokenUses []string
	skew      time.Duration
}

// NewCognitoVerifier registers the pool's key set in a refreshing cache.
// The cache lives until ctx is cancelled.
func NewCognitoVerifier(ctx context.Context, cfg config.CognitoConfig) (*CognitoVerifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	refresh := cfg.JWKSRefreshMinimum
	if refresh <= 0 {
		refresh = 15 * time.Minute
	}

	cache := jwk.NewCache(ctx)
	if err := cache.Register(cfg.KeySetURL(), jwk.WithMinRefreshInterval(refresh)); err != nil {
		return nil, fmt.Errorf("register jwks %s: %w", cfg.KeySetURL(), err)
	}

	uses := cfg.AllowedTokenUses
	if len(uses) == 0 {
		uses = []string{"id", "access"}
	}

	return &CognitoVerifier{
		cache:     cache,
		jwksURL:   cfg.KeySetURL(),
		issuer:    cfg.Issuer(),
		clientID:  cfg.AppClientID,
		tokenUses: uses,
		skew:      cfg.ClockSkew,
	}, nil
}

// Warm fetches the key set once so the first request does not pay for it
func (v *CognitoVerifier) Warm(ctx context.Context) error {
	if _, err := v.cache.Refresh(ctx, v.jwksURL); err != nil {
		return fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}
	return nil
}

// Verify validates signature, exp/nbf/iat, issuer, token_use and client id
func (v *CognitoVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	keys, err := v.cache.Get(ctx, v.jwksURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}

	parsed, err := jwt.ParseString(token,
		jwt.WithKeySet(keys),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithAcceptableSkew(v.skew),
		jwt.WithRequiredClaim(jwt.ExpirationKey),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if err := v.checkClient(parsed); err != nil {
		return nil, err
	}

	claims, err := parsed.AsMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return Claims(claims), nil
}

// checkClient enforces that the token was issued for this app client.
// ID tokens carry the client in aud, access tokens in client_id.
func (v *CognitoVerifier) checkClient(t jwt.Token) error {
	use := stringClaim(t, "token_use")
	if !slices.Contains(v.tokenUses, use) {
		return fmt.Errorf("%w: token_use %q not accepted", ErrInvalidToken, use)
	}

	switch use {
	case "id":
		if !slices.Contains(t.Audience(), v.clientID) {
			return fmt.Errorf("%w: audience mismatch", ErrInvalidToken)
		}
	case "access":
		if stringClaim(t, "client_id") != v.clientID {
			return fmt.Errorf("%w: client_id mismatch", ErrInvalidToken)
		}
	}
	return nil
}

func stringClaim(t jwt.Token, key string) string {
	v, ok := t.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
