package dto

// HealthResponse is returned by the health, liveness and readiness routes.
// Checks maps a dependency name to "ok" or the reason it failed.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
