package dto

// SignupRequest represents the request payload for profile registration
type SignupRequest struct {
	PhoneNumber         string `json:"phone_number" example:"+821012345678"`
	CognitoID           string `json:"cognito_id" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	GivenName           string `json:"given_name" example:"Gildong"`
	FamilyName          string `json:"family_name" example:"Hong"`
	Gender              string `json:"gender" enums:"male,female" example:"male"`
	Birthdate           string `json:"birthdate" example:"1990-01-01"` // YYYY-MM-DD
	PhoneNumberVerified bool   `json:"phone_number_verified,omitempty"`
}

// SignupResponse represents the response after successful registration
type SignupResponse struct {
	Message     string `json:"message"`
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"duplicate_phone"`
	Message string `json:"message,omitempty" example:"phone already registered"`
}
