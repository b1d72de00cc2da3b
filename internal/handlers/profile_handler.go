package handlers

import (
	"net/http"

	"SONJUTOKTOK_BACK-END/internal/apperr"
	"SONJUTOKTOK_BACK-END/internal/middleware"
	"SONJUTOKTOK_BACK-END/internal/service"
	"SONJUTOKTOK_BACK-END/internal/utils"
)

// ProfileHandler serves read-only views of the caller's profile.
// Routes must be wrapped with middleware.RequireProfile.
type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// GetMe godoc
// @Summary      Get my profile
// @Description  Profile of the user identified by the Cognito bearer token
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /profile/me [get]
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		utils.WriteError(w, r, apperr.New(apperr.KindUnauthenticated, "missing user in context"))
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, service.ProfileView(profile))
}

// GetPhone godoc
// @Summary      Get my phone number
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.PhoneResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /profile/phone [get]
func (h *ProfileHandler) GetPhone(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		utils.WriteError(w, r, apperr.New(apperr.KindUnauthenticated, "missing user in context"))
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, service.PhoneView(profile))
}
