package handlers

import (
	"context"
	"net/http"
	"time"

	"SONJUTOKTOK_BACK-END/internal/dto"
	"SONJUTOKTOK_BACK-END/internal/utils"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check related requests
type HealthHandler struct {
	db      Pinger
	version string
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Root godoc
// @Summary  Service banner
// @Tags     health
// @Produce  json
// @Success  200  {object}  dto.RootResponse
// @Router   / [get]
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.RootResponse{
		Message: "Sonjutoktok API is running",
		Version: h.version,
	})
}

// HealthCheck godoc
// @Summary  Liveness check (no database)
// @Tags     health
// @Produce  json
// @Success  200  {object}  dto.HealthResponse
// @Router   /health [get]
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "healthy"})
}

// ReadinessCheck godoc
// @Summary  Readiness check (includes database connectivity)
// @Tags     health
// @Produce  json
// @Success  200  {object}  dto.HealthResponse
// @Failure  503  {object}  dto.HealthResponse
// @Router   /readyz [get]
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status:  "degraded",
			Details: map[string]any{"db": err.Error()},
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:  "ready",
		Details: map[string]any{"db": "ok"},
	})
}
