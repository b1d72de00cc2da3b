package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"SONJUTOKTOK_BACK-END/internal/models"
)

const (
	uniqueViolation = "23505"

	constraintPhone   = "users_pkey"
	constraintSubject = "uq_users_cognito_id"
)

const schema = `
create table if not exists users (
	phone_number          varchar(32)  not null,
	cognito_id            varchar(64)  not null,
	name                  varchar(120) not null,
	given_name            varchar(60)  not null default '',
	family_name           varchar(60)  not null default '',
	gender                text         not null check (gender in ('male', 'female')),
	birthdate             date         not null,
	phone_number_verified boolean      not null default false,
	created_at            timestamptz  not null default now(),
	constraint users_pkey primary key (phone_number),
	constraint uq_users_cognito_id unique (cognito_id)
);
create index if not exists ix_users_name on users (name);
`

const profileColumns = `phone_number, cognito_id, name, given_name, family_name, gender, birthdate, phone_number_verified, created_at`

// PostgresStore keeps profiles in the users table. Every call borrows a
// pooled connection and hands it back before returning.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Pool exposes the underlying pool for health checks and metrics
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

// Migrate creates the users table and its constraints if they are missing
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) FindByPhone(ctx context.Context, phone string) (*models.Profile, error) {
	const q = `select ` + profileColumns + ` from users where phone_number = $1`
	return s.findOne(ctx, q, phone)
}

func (s *PostgresStore) FindBySubject(ctx context.Context, subject string) (*models.Profile, error) {
	const q = `select ` + profileColumns + ` from users where cognito_id = $1`
	return s.findOne(ctx, q, subject)
}

// Insert relies on the primary key and uq_users_cognito_id to decide races
func (s *PostgresStore) Insert(ctx context.Context, p models.Profile) (*models.Profile, error) {
	const q = `
insert into users (phone_number, cognito_id, name, given_name, family_name, gender, birthdate, phone_number_verified)
values ($1, $2, $3, $4, $5, $6, $7, $8)
returning ` + profileColumns

	row := s.pool.QueryRow(ctx, q,
		p.PhoneNumber, p.SubjectID, p.Name, p.GivenName, p.FamilyName,
		string(p.Gender), p.Birthdate, p.PhoneNumberVerified,
	)
	created, err := scanProfile(row)
	if err != nil {
		return nil, translateInsertError(err)
	}
	return created, nil
}

func (s *PostgresStore) findOne(ctx context.Context, q string, arg string) (*models.Profile, error) {
	p, err := scanProfile(s.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	var gender string
	if err := row.Scan(
		&p.PhoneNumber, &p.SubjectID, &p.Name, &p.GivenName, &p.FamilyName,
		&gender, &p.Birthdate, &p.PhoneNumberVerified, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Gender = models.Gender(gender)
	return &p, nil
}

func translateInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case constraintPhone:
			return fmt.Errorf("%w: %s", ErrDuplicatePhone, pgErr.Detail)
		case constraintSubject:
			return fmt.Errorf("%w: %s", ErrDuplicateSubject, pgErr.Detail)
		}
	}
	return fmt.Errorf("insert profile: %w", err)
}
