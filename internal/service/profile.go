package service

import (
	"SONJUTOKTOK_BACK-END/internal/dto"
	"SONJUTOKTOK_BACK-END/internal/models"
)

// ProfileView is the full read projection of the caller's profile
func ProfileView(p *models.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		PhoneNumber:         p.PhoneNumber,
		Name:                p.Name,
		GivenName:           p.GivenName,
		FamilyName:          p.FamilyName,
		Gender:              string(p.Gender),
		Birthdate:           p.Birthdate.Format(models.DateLayout),
		PhoneNumberVerified: p.PhoneNumberVerified,
	}
}

// PhoneView is the phone-only read projection
func PhoneView(p *models.Profile) dto.PhoneResponse {
	return dto.PhoneResponse{PhoneNumber: p.PhoneNumber}
}
