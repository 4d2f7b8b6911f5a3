package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/daap14/liga/internal/database"
	"github.com/daap14/liga/internal/membership"
	"github.com/daap14/liga/internal/season"
	"github.com/daap14/liga/internal/team"
	"github.com/daap14/liga/internal/venue"
)

// --- Helpers ---

func makeChiRequest(method, path string, body []byte, params map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req, w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err, "failed to parse response body")
	return body
}

func parseList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var items []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &items)
	require.NoError(t, err, "failed to parse response array")
	return items
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// --- Mock Venue Repository ---

type mockVenueRepo struct {
	createFn  func(ctx context.Context, v *venue.Venue) error
	getByIDFn func(ctx context.Context, id int64) (*venue.Venue, error)
	listFn    func(ctx context.Context, page database.Page) ([]venue.Venue, error)
	updateFn  func(ctx context.Context, id int64, v *venue.Venue) (*venue.Venue, error)
	deleteFn  func(ctx context.Context, id int64) (bool, error)
}

func (m *mockVenueRepo) Create(ctx context.Context, v *venue.Venue) error {
	if m.createFn != nil {
		return m.createFn(ctx, v)
	}
	v.ID = 1
	return nil
}

func (m *mockVenueRepo) GetByID(ctx context.Context, id int64) (*venue.Venue, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, venue.ErrVenueNotFound
}

func (m *mockVenueRepo) List(ctx context.Context, page database.Page) ([]venue.Venue, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page)
	}
	return []venue.Venue{}, nil
}

func (m *mockVenueRepo) Update(ctx context.Context, id int64, v *venue.Venue) (*venue.Venue, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, v)
	}
	return nil, venue.ErrVenueNotFound
}

func (m *mockVenueRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

// --- Mock Team Repository ---

type mockTeamRepo struct {
	createFn  func(ctx context.Context, t *team.Team) error
	getByIDFn func(ctx context.Context, id int64) (*team.Team, error)
	listFn    func(ctx context.Context, page database.Page) ([]team.Team, error)
	updateFn  func(ctx context.Context, id int64, t *team.Team) (*team.Team, error)
	deleteFn  func(ctx context.Context, id int64) (bool, error)
}

func (m *mockTeamRepo) Create(ctx context.Context, t *team.Team) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	t.ID = 1
	return nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id int64) (*team.Team, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) List(ctx context.Context, page database.Page) ([]team.Team, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page)
	}
	return []team.Team{}, nil
}

func (m *mockTeamRepo) Update(ctx context.Context, id int64, t *team.Team) (*team.Team, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, t)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

// --- Mock Season Repository ---

type mockSeasonRepo struct {
	createFn  func(ctx context.Context, s *season.Season) error
	getByIDFn func(ctx context.Context, id int64) (*season.Season, error)
	listFn    func(ctx context.Context, page database.Page) ([]season.Season, error)
	updateFn  func(ctx context.Context, id int64, s *season.Season) (*season.Season, error)
	deleteFn  func(ctx context.Context, id int64) (bool, error)
}

func (m *mockSeasonRepo) Create(ctx context.Context, s *season.Season) error {
	if m.createFn != nil {
		return m.createFn(ctx, s)
	}
	s.ID = 1
	return nil
}

func (m *mockSeasonRepo) GetByID(ctx context.Context, id int64) (*season.Season, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, season.ErrSeasonNotFound
}

func (m *mockSeasonRepo) List(ctx context.Context, page database.Page) ([]season.Season, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page)
	}
	return []season.Season{}, nil
}

func (m *mockSeasonRepo) Update(ctx context.Context, id int64, s *season.Season) (*season.Season, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, s)
	}
	return nil, season.ErrSeasonNotFound
}

func (m *mockSeasonRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

// --- Mock Membership Repository ---

type mockMembershipRepo struct {
	createFn   func(ctx context.Context, m *membership.Membership) error
	getByKeyFn func(ctx context.Context, key membership.Key) (*membership.Membership, error)
	listFn     func(ctx context.Context, page database.Page) ([]membership.Membership, error)
	updateFn   func(ctx context.Context, key membership.Key, m *membership.Membership) (*membership.Membership, error)
	deleteFn   func(ctx context.Context, key membership.Key) (bool, error)
}

func (m *mockMembershipRepo) Create(ctx context.Context, link *membership.Membership) error {
	if m.createFn != nil {
		return m.createFn(ctx, link)
	}
	return nil
}

func (m *mockMembershipRepo) GetByKey(ctx context.Context, key membership.Key) (*membership.Membership, error) {
	if m.getByKeyFn != nil {
		return m.getByKeyFn(ctx, key)
	}
	return nil, membership.ErrMembershipNotFound
}

func (m *mockMembershipRepo) List(ctx context.Context, page database.Page) ([]membership.Membership, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page)
	}
	return []membership.Membership{}, nil
}

func (m *mockMembershipRepo) Update(ctx context.Context, key membership.Key, link *membership.Membership) (*membership.Membership, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, key, link)
	}
	return nil, membership.ErrMembershipNotFound
}

func (m *mockMembershipRepo) Delete(ctx context.Context, key membership.Key) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return false, nil
}
