package store

import (
	"context"
	"errors"

	"SONJUTOKTOK_BACK-END/internal/models"
)

var (
	ErrNotFound         = errors.New("profile not found")
	ErrDuplicatePhone   = errors.New("phone number already registered")
	ErrDuplicateSubject = errors.New("subject id already registered")
)

// ProfileStore owns the lifecycle of profile rows.
// Insert must reject duplicates atomically, not only through a prior lookup.
type ProfileStore interface {
	FindByPhone(ctx context.Context, phone string) (*models.Profile, error)
	FindBySubject(ctx context.Context, subject string) (*models.Profile, error)
	Insert(ctx context.Context, p models.Profile) (*models.Profile, error)
	Ping(ctx context.Context) error
}
