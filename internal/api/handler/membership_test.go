package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daap14/liga/internal/api/handler"
	"github.com/daap14/liga/internal/database"
	"github.com/daap14/liga/internal/membership"
)

func linkParams(teamID, seasonID string) map[string]string {
	return map[string]string{"equipo_id": teamID, "temporada_id": seasonID}
}

func TestMembershipCreate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		h := handler.NewMembershipHandler(&mockMembershipRepo{})

		req, w := makeChiRequest(http.MethodPost, "/equipo_temporada/", []byte(`{"equipo_id":1,"temporada_id":2}`), nil)
		h.Create(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"equipo_id":1,"temporada_id":2}`, w.Body.String())
	})

	t.Run("duplicate pair", func(t *testing.T) {
		repo := &mockMembershipRepo{createFn: func(context.Context, *membership.Membership) error {
			return fmt.Errorf("%w: equipo_temporada_pkey", database.ErrDuplicate)
		}}
		h := handler.NewMembershipHandler(repo)

		req, w := makeChiRequest(http.MethodPost, "/equipo_temporada/", []byte(`{"equipo_id":1,"temporada_id":2}`), nil)
		h.Create(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "DUPLICATE", parseBody(t, w)["code"])
	})

	t.Run("missing season id", func(t *testing.T) {
		h := handler.NewMembershipHandler(&mockMembershipRepo{})

		req, w := makeChiRequest(http.MethodPost, "/equipo_temporada/", []byte(`{"equipo_id":1}`), nil)
		h.Create(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestMembershipGet(t *testing.T) {
	t.Parallel()

	repo := &mockMembershipRepo{getByKeyFn: func(_ context.Context, key membership.Key) (*membership.Membership, error) {
		if key != (membership.Key{TeamID: 1, SeasonID: 2}) {
			return nil, membership.ErrMembershipNotFound
		}
		return &membership.Membership{TeamID: 1, SeasonID: 2}, nil
	}}
	h := handler.NewMembershipHandler(repo)

	req, w := makeChiRequest(http.MethodGet, "/equipo_temporada/1/2", nil, linkParams("1", "2"))
	h.Get(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, w = makeChiRequest(http.MethodGet, "/equipo_temporada/1/3", nil, linkParams("1", "3"))
	h.Get(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Equipo-Temporada no encontrado", parseBody(t, w)["detail"])

	req, w = makeChiRequest(http.MethodGet, "/equipo_temporada/1/x", nil, linkParams("1", "x"))
	h.Get(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMembershipList(t *testing.T) {
	t.Parallel()

	repo := &mockMembershipRepo{listFn: func(context.Context, database.Page) ([]membership.Membership, error) {
		return []membership.Membership{{TeamID: 1, SeasonID: 2}}, nil
	}}
	h := handler.NewMembershipHandler(repo)

	req, w := makeChiRequest(http.MethodGet, "/equipo_temporada/", nil, nil)
	h.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"equipo_id":1,"temporada_id":2}]`, w.Body.String())
}

func TestMembershipUpdate(t *testing.T) {
	t.Parallel()

	var gotKey membership.Key
	repo := &mockMembershipRepo{updateFn: func(_ context.Context, key membership.Key, m *membership.Membership) (*membership.Membership, error) {
		gotKey = key
		return m, nil
	}}
	h := handler.NewMembershipHandler(repo)

	req, w := makeChiRequest(http.MethodPut, "/equipo_temporada/1/2", []byte(`{"equipo_id":1,"temporada_id":5}`), linkParams("1", "2"))
	h.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, membership.Key{TeamID: 1, SeasonID: 2}, gotKey)
	assert.JSONEq(t, `{"equipo_id":1,"temporada_id":5}`, w.Body.String())
}

func TestMembershipDelete(t *testing.T) {
	t.Parallel()

	h := handler.NewMembershipHandler(&mockMembershipRepo{})

	req, w := makeChiRequest(http.MethodDelete, "/equipo_temporada/1/2", nil, linkParams("1", "2"))
	h.Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Equipo-Temporada no encontrado", parseBody(t, w)["detail"])
}
