package handlers

import (
	"net/http"
	"time"
)

// ServiceName and ServiceVersion identify the server in the root
// descriptor. The version is a contract literal, not a build artifact.
const (
	ServiceName    = "Omnara Webhook Server"
	ServiceVersion = "1.0.0"
)

// SystemHandler serves the service descriptor and health endpoints.
type SystemHandler struct{}

func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

type serviceInfo struct {
	Service   string            `json:"service"`
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type healthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Root handles GET / with a descriptor of the service and its endpoints.
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, serviceInfo{
		Service: ServiceName,
		Status:  "online",
		Version: ServiceVersion,
		Endpoints: map[string]string{
			"health":  "/health",
			"webhook": "/webhook",
			"agents":  "/api/agents",
		},
	})
}

// Health handles GET /health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}
