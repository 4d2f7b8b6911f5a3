package handler

import (
	"errors"
	"net/http"

	"github.com/daap14/liga/internal/api/middleware"
	"github.com/daap14/liga/internal/api/response"
	"github.com/daap14/liga/internal/api/validation"
	"github.com/daap14/liga/internal/membership"
)

const membershipNotFound = "Equipo-Temporada no encontrado"

type membershipResponse struct {
	TeamID   int64 `json:"equipo_id"`
	SeasonID int64 `json:"temporada_id"`
}

func toMembershipResponse(m *membership.Membership) membershipResponse {
	return membershipResponse{TeamID: m.TeamID, SeasonID: m.SeasonID}
}

func membershipFromRequest(req validation.MembershipRequest) *membership.Membership {
	return &membership.Membership{TeamID: *req.TeamID, SeasonID: *req.SeasonID}
}

// MembershipHandler handles team-season link endpoints. Single links are
// addressed by both ids in the path.
type MembershipHandler struct {
	repo membership.Repository
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(repo membership.Repository) *MembershipHandler {
	return &MembershipHandler{repo: repo}
}

func parseKey(w http.ResponseWriter, r *http.Request, requestID string) (membership.Key, bool) {
	teamID, ok := parseID(w, r, "equipo_id", requestID)
	if !ok {
		return membership.Key{}, false
	}
	seasonID, ok := parseID(w, r, "temporada_id", requestID)
	if !ok {
		return membership.Key{}, false
	}
	return membership.Key{TeamID: teamID, SeasonID: seasonID}, true
}

// Create handles POST /equipo_temporada.
func (h *MembershipHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req validation.MembershipRequest
	if !decodeAndValidate(w, r, &req, requestID) {
		return
	}

	m := membershipFromRequest(req)
	if err := h.repo.Create(r.Context(), m); err != nil {
		writeStorageError(w, err, "create team-season link", requestID)
		return
	}

	response.Success(w, http.StatusOK, toMembershipResponse(m))
}

// List handles GET /equipo_temporada.
func (h *MembershipHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	page, ok := parsePage(w, r, requestID)
	if !ok {
		return
	}

	links, err := h.repo.List(r.Context(), page)
	if err != nil {
		writeStorageError(w, err, "list team-season links", requestID)
		return
	}

	items := make([]membershipResponse, 0, len(links))
	for i := range links {
		items = append(items, toMembershipResponse(&links[i]))
	}

	response.Success(w, http.StatusOK, items)
}

// Get handles GET /equipo_temporada/{equipo_id}/{temporada_id}.
func (h *MembershipHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	key, ok := parseKey(w, r, requestID)
	if !ok {
		return
	}

	m, err := h.repo.GetByKey(r.Context(), key)
	if err != nil {
		if errors.Is(err, membership.ErrMembershipNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", membershipNotFound, requestID)
			return
		}
		writeStorageError(w, err, "get team-season link", requestID)
		return
	}

	response.Success(w, http.StatusOK, toMembershipResponse(m))
}

// Update handles PUT /equipo_temporada/{equipo_id}/{temporada_id}.
func (h *MembershipHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	key, ok := parseKey(w, r, requestID)
	if !ok {
		return
	}

	var req validation.MembershipRequest
	if !decodeAndValidate(w, r, &req, requestID) {
		return
	}

	m, err := h.repo.Update(r.Context(), key, membershipFromRequest(req))
	if err != nil {
		if errors.Is(err, membership.ErrMembershipNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", membershipNotFound, requestID)
			return
		}
		writeStorageError(w, err, "update team-season link", requestID)
		return
	}

	response.Success(w, http.StatusOK, toMembershipResponse(m))
}

// Delete handles DELETE /equipo_temporada/{equipo_id}/{temporada_id}.
func (h *MembershipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	key, ok := parseKey(w, r, requestID)
	if !ok {
		return
	}

	deleted, err := h.repo.Delete(r.Context(), key)
	if err != nil {
		writeStorageError(w, err, "delete team-season link", requestID)
		return
	}
	if !deleted {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", membershipNotFound, requestID)
		return
	}

	response.Deleted(w)
}
