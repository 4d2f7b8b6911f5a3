package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/daap14/liga/internal/api/middleware"
	"github.com/daap14/liga/internal/api/response"
	"github.com/daap14/liga/internal/api/validation"
	"github.com/daap14/liga/internal/team"
)

const teamNotFound = "Equipo no encontrado"

type teamResponse struct {
	ID        int64       `json:"equipo_id"`
	Name      string      `json:"nombre"`
	VenueID   int64       `json:"estadio_id"`
	FoundedOn string      `json:"fecha_fundacion"`
	Budget    json.Number `json:"presupuesto"`
}

func toTeamResponse(t *team.Team) teamResponse {
	return teamResponse{
		ID:        t.ID,
		Name:      t.Name,
		VenueID:   t.VenueID,
		FoundedOn: t.FoundedOn.Format(time.DateOnly),
		Budget:    json.Number(t.Budget.String()),
	}
}

// teamFromRequest assumes req passed validation, so the date parses.
func teamFromRequest(req validation.TeamRequest) *team.Team {
	foundedOn, _ := time.ParseInLocation(time.DateOnly, *req.FoundedOn, time.UTC)
	return &team.Team{
		Name:      *req.Name,
		VenueID:   *req.VenueID,
		FoundedOn: foundedOn,
		Budget:    *req.Budget,
	}
}

// TeamHandler handles team CRUD endpoints.
type TeamHandler struct {
	repo team.Repository
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(repo team.Repository) *TeamHandler {
	return &TeamHandler{repo: repo}
}

// Create handles POST /equipos.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req validation.TeamRequest
	if !decodeAndValidate(w, r, &req, requestID) {
		return
	}

	t := teamFromRequest(req)
	if err := h.repo.Create(r.Context(), t); err != nil {
		writeStorageError(w, err, "create team", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTeamResponse(t))
}

// List handles GET /equipos.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	page, ok := parsePage(w, r, requestID)
	if !ok {
		return
	}

	teams, err := h.repo.List(r.Context(), page)
	if err != nil {
		writeStorageError(w, err, "list teams", requestID)
		return
	}

	items := make([]teamResponse, 0, len(teams))
	for i := range teams {
		items = append(items, toTeamResponse(&teams[i]))
	}

	response.Success(w, http.StatusOK, items)
}

// GetByID handles GET /equipos/{id}.
func (h *TeamHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r, "id", requestID)
	if !ok {
		return
	}

	t, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", teamNotFound, requestID)
			return
		}
		writeStorageError(w, err, "get team", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTeamResponse(t))
}

// Update handles PUT /equipos/{id}.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r, "id", requestID)
	if !ok {
		return
	}

	var req validation.TeamRequest
	if !decodeAndValidate(w, r, &req, requestID) {
		return
	}

	t, err := h.repo.Update(r.Context(), id, teamFromRequest(req))
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", teamNotFound, requestID)
			return
		}
		writeStorageError(w, err, "update team", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTeamResponse(t))
}

// Delete handles DELETE /equipos/{id}.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r, "id", requestID)
	if !ok {
		return
	}

	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		writeStorageError(w, err, "delete team", requestID)
		return
	}
	if !deleted {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", teamNotFound, requestID)
		return
	}

	response.Deleted(w)
}
