package handler

import (
	"errors"
	"net/http"

	"github.com/daap14/liga/internal/api/middleware"
	"github.com/daap14/liga/internal/api/response"
	"github.com/daap14/liga/internal/api/validation"
	"github.com/daap14/liga/internal/season"
)

const seasonNotFound = "Temporada no encontrada"

type seasonResponse struct {
	ID        int64  `json:"temporada_id"`
	StartYear int    `json:"año_inicio"`
	EndYear   int    `json:"año_fin"`
	Name      string `json:"nombre_temporada"`
}

func toSeasonResponse(s *season.Season) seasonResponse {
	return seasonResponse{
		ID:        s.ID,
		StartYear: s.StartYear,
		EndYear:   s.EndYear,
		Name:      s.Name,
	}
}

func seasonFromRequest(req validation.SeasonRequest) *season.Season {
	return &season.Season{
		StartYear: *req.StartYear,
		EndYear:   *req.EndYear,
		Name:      *req.Name,
	}
}

// SeasonHandler handles season CRUD endpoints.
type SeasonHandler struct {
	repo season.Repository
}

// NewSeasonHandler creates a new SeasonHandler.
func NewSeasonHandler(repo season.Repository) *SeasonHandler {
	return &SeasonHandler{repo: repo}
}

// Create handles POST /temporadas.
func (h *SeasonHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req validation.SeasonRequest
	if !decodeAndValidate(w, r, &req, requestID) {
		return
	}

	s := seasonFromRequest(req)
	if err := h.repo.Create(r.Context(), s); err != nil {
		writeStorageError(w, err, "create season", requestID)
		return
	}

	response.Success(w, http.StatusOK, toSeasonResponse(s))
}

// List handles GET /temporadas.
func (h *SeasonHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	page, ok := parsePage(w, r, requestID)
	if !ok {
		return
	}

	seasons, err := h.repo.List(r.Context(), page)
	if err != nil {
		writeStorageError(w, err, "list seasons", requestID)
		return
	}

	items := make([]seasonResponse, 0, len(seasons))
	for i := range seasons {
		items = append(items, toSeasonResponse(&seasons[i]))
	}

	response.Success(w, http.StatusOK, items)
}

// GetByID handles GET /temporadas/{id}.
func (h *SeasonHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r, "id", requestID)
	if !ok {
		return
	}

	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, season.ErrSeasonNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", seasonNotFound, requestID)
			return
		}
		writeStorageError(w, err, "get season", requestID)
		return
	}

	response.Success(w, http.StatusOK, toSeasonResponse(s))
}

// Update handles PUT /temporadas/{id}.
func (h *SeasonHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r, "id", requestID)
	if !ok {
		return
	}

	var req validation.SeasonRequest
	if !decodeAndValidate(w, r, &req, requestID) {
		return
	}

	s, err := h.repo.Update(r.Context(), id, seasonFromRequest(req))
	if err != nil {
		if errors.Is(err, season.ErrSeasonNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", seasonNotFound, requestID)
			return
		}
		writeStorageError(w, err, "update season", requestID)
		return
	}

	response.Success(w, http.StatusOK, toSeasonResponse(s))
}

// Delete handles DELETE /temporadas/{id}.
func (h *SeasonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r, "id", requestID)
	if !ok {
		return
	}

	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		writeStorageError(w, err, "delete season", requestID)
		return
	}
	if !deleted {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", seasonNotFound, requestID)
		return
	}

	response.Deleted(w)
}
