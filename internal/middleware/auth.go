package middleware

import (
	"context"
	"net/http"
	"strings"

	"SONJUTOKTOK_BACK-END/internal/apperr"
	"SONJUTOKTOK_BACK-END/internal/auth"
	"SONJUTOKTOK_BACK-END/internal/logger"
	"SONJUTOKTOK_BACK-END/internal/models"
	"SONJUTOKTOK_BACK-END/internal/utils"
)

type ctxKey string

const profileKey ctxKey = "profile"

// RequireProfile validates the bearer token in the Authorization header,
// loads the caller's profile and adds it to the request context
func RequireProfile(resolver *auth.Resolver, metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				metrics.ObserveAuth(apperr.KindOf(err).Code())
				utils.WriteError(w, r, err)
				return
			}

			profile, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				metrics.ObserveAuth(apperr.KindOf(err).Code())
				utils.WriteError(w, r, err)
				return
			}
			metrics.ObserveAuth("ok")

			ctx := WithProfile(r.Context(), profile)
			ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.Subject(profile.SubjectID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithProfile stores the resolved profile in ctx
func WithProfile(ctx context.Context, profile *models.Profile) context.Context {
	return context.WithValue(ctx, profileKey, profile)
}

// ProfileFromContext returns the profile stored by RequireProfile
func ProfileFromContext(ctx context.Context) (*models.Profile, bool) {
	profile, ok := ctx.Value(profileKey).(*models.Profile)
	return profile, ok && profile != nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperr.New(apperr.KindUnauthenticated, "Authorization header required")
	}

	// Extract token from "Bearer <token>"
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", apperr.New(apperr.KindUnauthenticated, "Invalid authorization header format")
	}
	return strings.TrimSpace(token), nil
}
