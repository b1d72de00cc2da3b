package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPostgres connects to TEST_DATABASE_URL and starts from an empty users table.
func newTestPostgres(t *testing.T) *PostgresStore {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s := NewPostgresStore(pool)
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Migrate(ctx), "migrate must be idempotent")

	_, err = pool.Exec(ctx, `truncate table users`)
	require.NoError(t, err)
	return s
}

func TestPostgresStore(t *testing.T) {
	runContract(t, func(t *testing.T) ProfileStore {
		return newTestPostgres(t)
	})
}

func TestPostgresRejectsUnknownGender(t *testing.T) {
	s := newTestPostgres(t)
	p := sampleProfile("+821012345678", "abc-123")
	p.Gender = "other"

	_, err := s.Insert(context.Background(), p)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicatePhone)
}

func TestTranslateInsertError(t *testing.T) {
	phone := &pgconn.PgError{Code: uniqueViolation, ConstraintName: constraintPhone}
	assert.ErrorIs(t, translateInsertError(phone), ErrDuplicatePhone)

	subject := &pgconn.PgError{Code: uniqueViolation, ConstraintName: constraintSubject}
	assert.ErrorIs(t, translateInsertError(subject), ErrDuplicateSubject)

	other := &pgconn.PgError{Code: "23514", ConstraintName: "users_gender_check"}
	err := translateInsertError(other)
	assert.NotErrorIs(t, err, ErrDuplicatePhone)
	assert.NotErrorIs(t, err, ErrDuplicateSubject)
	assert.ErrorIs(t, err, other)
}
