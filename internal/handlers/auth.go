package handlers

import (
	"encoding/json"
	"net/http"

	"SONJUTOKTOK_BACK-END/internal/apperr"
	"SONJUTOKTOK_BACK-END/internal/dto"
	"SONJUTOKTOK_BACK-END/internal/middleware"
	"SONJUTOKTOK_BACK-END/internal/service"
	"SONJUTOKTOK_BACK-END/internal/utils"
)

const maxBodyBytes = 1 << 20

// AuthHandler handles registration requests
type AuthHandler struct {
	registration *service.Registration
	metrics      *middleware.Metrics
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(registration *service.Registration, metrics *middleware.Metrics) *AuthHandler {
	return &AuthHandler{registration: registration, metrics: metrics}
}

// Signup handles profile registration
// @Summary Register a profile
// @Description Store the profile of a user who already signed up with Cognito. The app calls this after receiving the Cognito sub.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Profile registration data"
// @Success 201 {object} dto.SignupResponse "Profile created"
// @Failure 400 {object} dto.ErrorResponse "Phone number or Cognito ID already registered"
// @Failure 422 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.metrics.ObserveSignup(apperr.KindValidation.Code())
		utils.WriteError(w, r, apperr.Wrap(apperr.KindValidation, "Invalid request body", err))
		return
	}

	profile, err := h.registration.Register(r.Context(), service.SignupInput{
		PhoneNumber:         req.PhoneNumber,
		SubjectID:           req.CognitoID,
		GivenName:           req.GivenName,
		FamilyName:          req.FamilyName,
		Gender:              req.Gender,
		Birthdate:           req.Birthdate,
		PhoneNumberVerified: req.PhoneNumberVerified,
	})
	if err != nil {
		h.metrics.ObserveSignup(apperr.KindOf(err).Code())
		utils.WriteError(w, r, err)
		return
	}
	h.metrics.ObserveSignup("ok")

	utils.WriteJSONResponse(w, http.StatusCreated, dto.SignupResponse{
		Message:     "signup completed",
		PhoneNumber: profile.PhoneNumber,
		Name:        profile.Name,
	})
}
