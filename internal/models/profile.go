package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// Gender of a profile owner
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender accepts the English values and the labels older app builds send
func ParseGender(value string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "male", "남자":
		return GenderMale, nil
	case "female", "여자":
		return GenderFemale, nil
	default:
		return "", fmt.Errorf("unknown gender %q", value)
	}
}

// Valid reports whether g is one of the stored values
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Profile represents a row of the users table
type Profile struct {
	PhoneNumber         string    `json:"phone_number" db:"phone_number"`
	SubjectID           string    `json:"cognito_id" db:"cognito_id"`
	Name                string    `json:"name" db:"name"`
	GivenName           string    `json:"given_name" db:"given_name"`
	FamilyName          string    `json:"family_name" db:"family_name"`
	Gender              Gender    `json:"gender" db:"gender"`
	Birthdate           time.Time `json:"birthdate" db:"birthdate"`
	PhoneNumberVerified bool      `json:"phone_number_verified" db:"phone_number_verified"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// ComposeName builds the display name, family name first with no separator
func ComposeName(givenName, familyName string) string {
	return familyName + givenName
}
