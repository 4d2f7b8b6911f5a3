package handler

import (
	"errors"
	"net/http"

	"github.com/daap14/liga/internal/api/middleware"
	"github.com/daap14/liga/internal/api/response"
	"github.com/daap14/liga/internal/api/validation"
	"github.com/daap14/liga/internal/venue"
)

const venueNotFound = "Estadio no encontrado"

type venueResponse struct {
	ID       int64  `json:"estadio_id"`
	Name     string `json:"nombre"`
	Capacity int    `json:"capacidad"`
	City     string `json:"ciudad"`
	Country  string `json:"pais"`
}

func toVenueResponse(v *venue.Venue) venueResponse {
	return venueResponse{
		ID:       v.ID,
		Name:     v.Name,
		Capacity: v.Capacity,
		City:     v.City,
		Country:  v.Country,
	}
}

func venueFromRequest(req validation.VenueRequest) *venue.Venue {
	return &venue.Venue{
		Name:     *req.Name,
		Capacity: *req.Capacity,
		City:     *req.City,
		Country:  *req.Country,
	}
}

// VenueHandler handles venue CRUD endpoints.
type VenueHandler struct {
	repo venue.Repository
}

// NewVenueHandler creates a new VenueHandler.
func NewVenueHandler(repo venue.Repository) *VenueHandler {
	return &VenueHandler{repo: repo}
}

// Create handles POST /estadios.
func (h *VenueHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req validation.VenueRequest
	if !decodeAndValidate(w, r, &req, requestID) {
		return
	}

	v := venueFromRequest(req)
	if err := h.repo.Create(r.Context(), v); err != nil {
		writeStorageError(w, err, "create venue", requestID)
		return
	}

	response.Success(w, http.StatusOK, toVenueResponse(v))
}

// List handles GET /estadios.
func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	page, ok := parsePage(w, r, requestID)
	if !ok {
		return
	}

	venues, err := h.repo.List(r.Context(), page)
	if err != nil {
		writeStorageError(w, err, "list venues", requestID)
		return
	}

	items := make([]venueResponse, 0, len(venues))
	for i := range venues {
		items = append(items, toVenueResponse(&venues[i]))
	}

	response.Success(w, http.StatusOK, items)
}

// GetByID handles GET /estadios/{id}.
func (h *VenueHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r, "id", requestID)
	if !ok {
		return
	}

	v, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, venue.ErrVenueNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", venueNotFound, requestID)
			return
		}
		writeStorageError(w, err, "get venue", requestID)
		return
	}

	response.Success(w, http.StatusOK, toVenueResponse(v))
}

// Update handles PUT /estadios/{id}.
func (h *VenueHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r, "id", requestID)
	if !ok {
		return
	}

	var req validation.VenueRequest
	if !decodeAndValidate(w, r, &req, requestID) {
		return
	}

	v, err := h.repo.Update(r.Context(), id, venueFromRequest(req))
	if err != nil {
		if errors.Is(err, venue.ErrVenueNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", venueNotFound, requestID)
			return
		}
		writeStorageError(w, err, "update venue", requestID)
		return
	}

	response.Success(w, http.StatusOK, toVenueResponse(v))
}

// Delete handles DELETE /estadios/{id}.
func (h *VenueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r, "id", requestID)
	if !ok {
		return
	}

	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		writeStorageError(w, err, "delete venue", requestID)
		return
	}
	if !deleted {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", venueNotFound, requestID)
		return
	}

	response.Deleted(w)
}
