package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SONJUTOKTOK_BACK-END/internal/apperr"
	"SONJUTOKTOK_BACK-END/internal/auth"
	"SONJUTOKTOK_BACK-END/internal/models"
	"SONJUTOKTOK_BACK-END/internal/store"
)

func TestBearerToken(t *testing.T) {
	token, err := bearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = bearerToken("bearer   abc.def.ghi ")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz", "abc.def.ghi"} {
		_, err := bearerToken(header)
		assert.True(t, apperr.Is(err, apperr.KindUnauthenticated), header)
	}
}

func newResolver(t *testing.T) *auth.Resolver {
	t.Helper()
	mem := store.NewMemoryStore()
	_, err := mem.Insert(context.Background(), models.Profile{
		PhoneNumber: "+821012345678",
		SubjectID:   "abc-123",
		Name:        "HongGildong",
		Gender:      models.GenderMale,
		Birthdate:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	verifier := auth.VerifierFunc(func(_ context.Context, token string) (auth.Claims, error) {
		if token == "good" {
			return auth.Claims{"sub": "abc-123"}, nil
		}
		if token == "stranger" {
			return auth.Claims{"sub": "xyz-999"}, nil
		}
		return nil, auth.ErrInvalidToken
	})
	return auth.NewResolver(verifier, mem)
}

func TestRequireProfile(t *testing.T) {
	metrics, err := NewMetrics()
	require.NoError(t, err)

	var seen *models.Profile
	h := RequireProfile(newResolver(t), metrics)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ProfileFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/profile/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, serve("Bearer good"))
	require.NotNil(t, seen)
	assert.Equal(t, "+821012345678", seen.PhoneNumber)

	assert.Equal(t, http.StatusUnauthorized, serve(""))
	assert.Equal(t, http.StatusUnauthorized, serve("Bearer bad"))
	assert.Equal(t, http.StatusNotFound, serve("Bearer stranger"))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.authResolutions.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.authResolutions.WithLabelValues("unauthenticated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.authResolutions.WithLabelValues("profile_not_found")))
}

func TestProfileFromEmptyContext(t *testing.T) {
	_, ok := ProfileFromContext(context.Background())
	assert.False(t, ok)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAuth("ok")
	m.ObserveSignup("ok")
	assert.NoError(t, m.RegisterPool(nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	assert.NotNil(t, m.Instrument(next))
}
