package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SONJUTOKTOK_BACK-END/internal/apperr"
	"SONJUTOKTOK_BACK-END/internal/models"
	"SONJUTOKTOK_BACK-END/internal/store"
)

// countingFinder records how often the store was consulted
type countingFinder struct {
	store.ProfileStore
	calls int
	err   error
}

func (f *countingFinder) FindBySubject(ctx context.Context, subject string) (*models.Profile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.ProfileStore.FindBySubject(ctx, subject)
}

func staticVerifier(claims Claims, err error) Verifier {
	return VerifierFunc(func(context.Context, string) (Claims, error) {
		return claims, err
	})
}

func seededFinder(t *testing.T) *countingFinder {
	t.Helper()
	mem := store.NewMemoryStore()
	_, err := mem.Insert(context.Background(), models.Profile{
		PhoneNumber: "+821012345678",
		SubjectID:   "abc-123",
		Name:        "HongGildong",
		GivenName:   "Gildong",
		FamilyName:  "Hong",
		Gender:      models.GenderMale,
		Birthdate:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return &countingFinder{ProfileStore: mem}
}

func TestResolveReturnsStoredProfile(t *testing.T) {
	finder := seededFinder(t)
	r := NewResolver(staticVerifier(Claims{"sub": "abc-123"}, nil), finder)

	profile, err := r.Resolve(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "+821012345678", profile.PhoneNumber)
	assert.Equal(t, "abc-123", profile.SubjectID)
	assert.Equal(t, "+821012345678", ResolvePhone(profile))
}

func TestResolveRejectsBeforeStoreAccess(t *testing.T) {
	cases := map[string]struct {
		token    string
		verifier Verifier
	}{
		"empty token":    {"", staticVerifier(Claims{"sub": "abc-123"}, nil)},
		"bad signature":  {"token", staticVerifier(nil, fmt.Errorf("%w: signature", ErrInvalidToken))},
		"expired":        {"token", staticVerifier(nil, fmt.Errorf("%w: exp not satisfied", ErrInvalidToken))},
		"missing sub":    {"token", staticVerifier(Claims{"token_use": "id"}, nil)},
		"blank sub":      {"token", staticVerifier(Claims{"sub": "  "}, nil)},
		"non-string sub": {"token", staticVerifier(Claims{"sub": 42}, nil)},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			finder := seededFinder(t)
			r := NewResolver(tc.verifier, finder)

			_, err := r.Resolve(context.Background(), tc.token)
			require.Error(t, err)
			assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
			assert.Zero(t, finder.calls)
		})
	}
}

func TestResolveUnknownSubjectIsNotFound(t *testing.T) {
	finder := seededFinder(t)
	r := NewResolver(staticVerifier(Claims{"sub": "xyz-999"}, nil), finder)

	_, err := r.Resolve(context.Background(), "token")
	require.Error(t, err)
	assert.Equal(t, apperr.KindProfileNotFound, apperr.KindOf(err))
	assert.Equal(t, 1, finder.calls)
}

func TestResolveKeySetOutageIsUnavailable(t *testing.T) {
	r := NewResolver(staticVerifier(nil, fmt.Errorf("%w: dial tcp", ErrKeySetUnavailable)), seededFinder(t))

	_, err := r.ResolveSubject(context.Background(), "token")
	assert.Equal(t, apperr.KindUnavailable, apperr.KindOf(err))
}

func TestResolveStoreFailureIsInternal(t *testing.T) {
	finder := seededFinder(t)
	finder.err = errors.New("connection reset")
	r := NewResolver(staticVerifier(Claims{"sub": "abc-123"}, nil), finder)

	_, err := r.Resolve(context.Background(), "token")
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestResolvePhoneNil(t *testing.T) {
	assert.Equal(t, "", ResolvePhone(nil))
}
