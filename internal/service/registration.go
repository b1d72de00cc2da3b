package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"SONJUTOKTOK_BACK-END/internal/apperr"
	"SONJUTOKTOK_BACK-END/internal/logger"
	"SONJUTOKTOK_BACK-END/internal/models"
	"SONJUTOKTOK_BACK-END/internal/store"
)

// Column limits of the users table
const (
	maxPhoneLen   = 32
	maxSubjectLen = 64
	maxNamePart   = 60
)

const (
	msgDuplicatePhone   = "phone already registered"
	msgDuplicateSubject = "subject id already registered"
)

// SignupInput is what the mobile app sends after finishing Cognito signup
type SignupInput struct {
	PhoneNumber         string
	SubjectID           string
	GivenName           string
	FamilyName          string
	Gender              string
	Birthdate           string
	PhoneNumberVerified bool
}

// Registration stores the profile of a user who already signed up with Cognito.
// The subject id is taken from the request as-is; it is not checked against
// the user pool.
type Registration struct {
	store store.ProfileStore
	now   func() time.Time
}

func NewRegistration(s store.ProfileStore) *Registration {
	return &Registration{store: s, now: time.Now}
}

// Register validates in, composes the display name and inserts one row
func (r *Registration) Register(ctx context.Context, in SignupInput) (*models.Profile, error) {
	profile, err := r.build(in)
	if err != nil {
		return nil, err
	}

	if _, err := r.store.FindByPhone(ctx, profile.PhoneNumber); err == nil {
		return nil, apperr.New(apperr.KindDuplicatePhone, msgDuplicatePhone)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to check phone number", err)
	}

	if _, err := r.store.FindBySubject(ctx, profile.SubjectID); err == nil {
		return nil, apperr.New(apperr.KindDuplicateSubject, msgDuplicateSubject)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to check subject id", err)
	}

	created, err := r.store.Insert(ctx, profile)
	switch {
	case errors.Is(err, store.ErrDuplicatePhone):
		return nil, apperr.Wrap(apperr.KindDuplicatePhone, msgDuplicatePhone, err)
	case errors.Is(err, store.ErrDuplicateSubject):
		return nil, apperr.Wrap(apperr.KindDuplicateSubject, msgDuplicateSubject, err)
	case err != nil:
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create profile", err)
	}

	logger.From(ctx).Info("profile registered",
		logger.Phone(created.PhoneNumber),
		logger.Subject(created.SubjectID),
		zap.String("gender", string(created.Gender)),
	)
	return created, nil
}

func (r *Registration) build(in SignupInput) (models.Profile, error) {
	phone := strings.TrimSpace(in.PhoneNumber)
	subject := strings.TrimSpace(in.SubjectID)
	given := strings.TrimSpace(in.GivenName)
	family := strings.TrimSpace(in.FamilyName)

	var problems []string
	check := func(field, value string, limit int) {
		switch {
		case value == "":
			problems = append(problems, field+" is required")
		case utf8.RuneCountInString(value) > limit:
			problems = append(problems, fmt.Sprintf("%s must be at most %d characters", field, limit))
		}
	}
	check("phone_number", phone, maxPhoneLen)
	check("cognito_id", subject, maxSubjectLen)
	check("given_name", given, maxNamePart)
	check("family_name", family, maxNamePart)

	var gender models.Gender
	if strings.TrimSpace(in.Gender) == "" {
		problems = append(problems, "gender is required")
	} else if g, err := models.ParseGender(in.Gender); err != nil {
		problems = append(problems, "gender must be one of male, female")
	} else {
		gender = g
	}

	var birthdate time.Time
	if strings.TrimSpace(in.Birthdate) == "" {
		problems = append(problems, "birthdate is required")
	} else if d, err := time.Parse(models.DateLayout, strings.TrimSpace(in.Birthdate)); err != nil {
		problems = append(problems, "birthdate must be a YYYY-MM-DD date")
	} else if d.After(r.now()) {
		problems = append(problems, "birthdate must not be in the future")
	} else {
		birthdate = d
	}

	if len(problems) > 0 {
		return models.Profile{}, apperr.New(apperr.KindValidation, strings.Join(problems, "; "))
	}

	return models.Profile{
		PhoneNumber:         phone,
		SubjectID:           subject,
		Name:                models.ComposeName(given, family),
		GivenName:           given,
		FamilyName:          family,
		Gender:              gender,
		Birthdate:           birthdate,
		PhoneNumberVerified: in.PhoneNumberVerified,
	}, nil
}
