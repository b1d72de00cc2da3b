package auth

import (
	"context"
	"errors"
	"strings"

	"SONJUTOKTOK_BACK-END/internal/apperr"
	"SONJUTOKTOK_BACK-END/internal/models"
	"SONJUTOKTOK_BACK-END/internal/store"
)

// ProfileFinder is the part of the profile store the resolver needs
type ProfileFinder interface {
	FindBySubject(ctx context.Context, subject string) (*models.Profile, error)
}

// Resolver turns a bearer token into the caller's stored profile.
// It holds no per-request state; every call verifies the token again.
type Resolver struct {
	verifier Verifier
	profiles ProfileFinder
}

func NewResolver(verifier Verifier, profiles ProfileFinder) *Resolver {
	return &Resolver{verifier: verifier, profiles: profiles}
}

// ResolveSubject verifies token and returns its sub claim.
// The profile store is never touched here.
func (r *Resolver) ResolveSubject(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", apperr.New(apperr.KindUnauthenticated, "missing bearer token")
	}

	claims, err := r.verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, ErrKeySetUnavailable) {
			return "", apperr.Wrap(apperr.KindUnavailable, "identity provider unavailable", err)
		}
		return "", apperr.Wrap(apperr.KindUnauthenticated, "token verification failed", err)
	}

	subject := claims.Subject()
	if subject == "" {
		return "", apperr.New(apperr.KindUnauthenticated, "token has no subject claim")
	}
	return subject, nil
}

// ResolveProfile loads the profile registered for subject
func (r *Resolver) ResolveProfile(ctx context.Context, subject string) (*models.Profile, error) {
	profile, err := r.profiles.FindBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Wrap(apperr.KindProfileNotFound, "profile not found", err)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load profile", err)
	}
	return profile, nil
}

// Resolve runs ResolveSubject then ResolveProfile
func (r *Resolver) Resolve(ctx context.Context, token string) (*models.Profile, error) {
	subject, err := r.ResolveSubject(ctx, token)
	if err != nil {
		return nil, err
	}
	return r.ResolveProfile(ctx, subject)
}

// ResolvePhone narrows a resolved profile to its phone number
func ResolvePhone(profile *models.Profile) string {
	if profile == nil {
		return ""
	}
	return profile.PhoneNumber
}
