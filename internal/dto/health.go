package dto

// HealthResponse represents the response structure for health checks
type HealthResponse struct {
	Status  string `json:"status"`
	Details any    `json:"details,omitempty"`
}

// RootResponse is returned by GET /
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
