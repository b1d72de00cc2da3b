package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SONJUTOKTOK_BACK-END/internal/models"
)

func sampleProfile(phone, subject string) models.Profile {
	return models.Profile{
		PhoneNumber: phone,
		SubjectID:   subject,
		Name:        models.ComposeName("Gildong", "Hong"),
		GivenName:   "Gildong",
		FamilyName:  "Hong",
		Gender:      models.GenderMale,
		Birthdate:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// runContract exercises the behaviour every ProfileStore must share.
// newStore must return an empty store.
func runContract(t *testing.T, newStore func(t *testing.T) ProfileStore) {
	t.Run("insert then find", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Insert(ctx, sampleProfile("+821012345678", "abc-123"))
		require.NoError(t, err)
		assert.Equal(t, "HongGildong", created.Name)
		assert.False(t, created.CreatedAt.IsZero())

		byPhone, err := s.FindByPhone(ctx, "+821012345678")
		require.NoError(t, err)
		assert.Equal(t, "abc-123", byPhone.SubjectID)
		assert.Equal(t, models.GenderMale, byPhone.Gender)
		assert.Equal(t, "1990-01-01", byPhone.Birthdate.Format(models.DateLayout))

		bySubject, err := s.FindBySubject(ctx, "abc-123")
		require.NoError(t, err)
		assert.Equal(t, "+821012345678", bySubject.PhoneNumber)
	})

	t.Run("missing rows", func(t *testing.T) {
		s := newStore(t)
		_, err := s.FindByPhone(context.Background(), "+820000000000")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.FindBySubject(context.Background(), "xyz-999")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate phone", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		_, err := s.Insert(ctx, sampleProfile("+821012345678", "abc-123"))
		require.NoError(t, err)

		_, err = s.Insert(ctx, sampleProfile("+821012345678", "def-456"))
		assert.ErrorIs(t, err, ErrDuplicatePhone)
	})

	t.Run("duplicate subject", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		_, err := s.Insert(ctx, sampleProfile("+821012345678", "abc-123"))
		require.NoError(t, err)

		_, err = s.Insert(ctx, sampleProfile("+821099999999", "abc-123"))
		assert.ErrorIs(t, err, ErrDuplicateSubject)

		_, err = s.FindByPhone(ctx, "+821099999999")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("concurrent inserts of one phone", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const attempts = 8
		var wg sync.WaitGroup
		errs := make([]error, attempts)
		start := make(chan struct{})
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				p := sampleProfile("+821012345678", "subject-"+string(rune('a'+i)))
				_, errs[i] = s.Insert(ctx, p)
			}(i)
		}
		close(start)
		wg.Wait()

		var ok, dup int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrDuplicatePhone):
				dup++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, attempts-1, dup)
	})
}
