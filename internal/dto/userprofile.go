package dto

// ProfileResponse is returned by GET /profile/me
type ProfileResponse struct {
	PhoneNumber         string `json:"phone_number"`
	Name                string `json:"name"`
	GivenName           string `json:"given_name"`
	FamilyName          string `json:"family_name"`
	Gender              string `json:"gender" enums:"male,female"`
	Birthdate           string `json:"birthdate"` // YYYY-MM-DD
	PhoneNumberVerified bool   `json:"phone_number_verified"`
}

// PhoneResponse is returned by GET /profile/phone
type PhoneResponse struct {
	PhoneNumber string `json:"phone_number"`
}
