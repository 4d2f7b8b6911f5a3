package handler

import (
	"context"
	"net/http"

	"github.com/daap14/liga/internal/api/response"
	"github.com/daap14/liga/internal/database"
)

// HealthReporter reports storage health. Implemented by *database.Gateway.
type HealthReporter interface {
	Health(ctx context.Context) database.HealthStatus
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      HealthReporter
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db HealthReporter, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
	}
}

type healthData struct {
	Status   string                `json:"status"`
	Version  string                `json:"version"`
	Database database.HealthStatus `json:"database"`
}

// ServeHTTP handles the health check request. It always answers 200; a
// storage problem shows up as status "degraded".
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	db := h.db.Health(r.Context())

	status := "healthy"
	if db.Status != "healthy" {
		status = "degraded"
	}

	response.Success(w, http.StatusOK, healthData{
		Status:   status,
		Version:  h.version,
		Database: db,
	})
}
