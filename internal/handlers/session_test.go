package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcardle/gatewalker/internal/storage"
	"github.com/jmcardle/gatewalker/pkg/engine"
	"github.com/jmcardle/gatewalker/pkg/state"
	"github.com/jmcardle/gatewalker/pkg/story"
	"github.com/jmcardle/gatewalker/pkg/world"
)

func testMaster(t *testing.T) *world.World {
	t.Helper()
	doc := &world.Document{
		Start: &world.StartDoc{Planet: "Earth", Room: "Quarters"},
		Planets: []world.PlanetDoc{
			{
				Name: "Earth",
				Rooms: []world.RoomDoc{
					{
						Name:        "Quarters",
						Description: "Your quarters.",
						Connections: []world.ConnectionRef{{ToRoom: "Armory", Type: "local"}},
					},
					{
						Name:        "Armory",
						Description: "Racks of weapons.",
						Items:       []string{"C4"},
						Connections: []world.ConnectionRef{{ToRoom: "Quarters", Type: "local"}},
					},
				},
			},
		},
	}
	return world.Build(doc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupHandlers(t *testing.T) (*SessionHandler, *ActionHandler, *storage.MockStorage) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := &story.Story{
		Intro: story.Lines{"An enemy mothership is coming."},
		Outro: story.Lines{"Earth is safe."},
	}
	master := testMaster(t)
	resolver := engine.New(st, engine.DefaultScript(), rand.New(rand.NewSource(1)), logger)
	store := storage.NewMockStorage()
	sessions := NewSessionHandler(master, resolver, store, logger)
	actions := NewActionHandler(sessions, master, resolver, store, logger)
	return sessions, actions, store
}

func createTestSession(t *testing.T, sessions *SessionHandler) CreateSessionResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", strings.NewReader(`{"player_name":"Carter"}`))
	rec := httptest.NewRecorder()
	sessions.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp CreateSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSessionCreate(t *testing.T) {
	sessions, _, store := setupHandlers(t)

	resp := createTestSession(t, sessions)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, state.StatusActive, resp.Status)
	assert.Equal(t, "An enemy mothership is coming.", resp.Intro)
	assert.Contains(t, resp.RoomStatus, "Location: Quarters")
	assert.Contains(t, resp.AvailableActions, engine.ActionMove)
	assert.Equal(t, []string{engine.DefaultScript().OpeningObjective}, resp.Objectives)

	snap, err := store.LoadSnapshot(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, snap, "created session must be persisted")
	assert.Equal(t, "Quarters", snap.Player.Room)
}

func TestSessionCreate_BadRequests(t *testing.T) {
	sessions, _, _ := setupHandlers(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed json", body: `{not json`, want: http.StatusBadRequest},
		{name: "missing player name", body: `{}`, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/sessions", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			sessions.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+uuid.NewString(), strings.NewReader(`{"player_name":"Carter"}`))
	rec := httptest.NewRecorder()
	sessions.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "POST with an ID should be rejected")
}

func TestSessionRead(t *testing.T) {
	sessions, _, _ := setupHandlers(t)
	created := createTestSession(t, sessions)

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/"+created.ID.String(), nil)
	rec := httptest.NewRecorder()
	sessions.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, created.ID, resp.ID)
	assert.Contains(t, resp.RoomStatus, "Location: Quarters")
}

func TestSessionRead_Errors(t *testing.T) {
	sessions, _, _ := setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	sessions.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/sessions/"+uuid.NewString(), nil)
	rec = httptest.NewRecorder()
	sessions.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
	rec = httptest.NewRecorder()
	sessions.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionDelete(t *testing.T) {
	sessions, _, _ := setupHandlers(t)
	created := createTestSession(t, sessions)

	req := httptest.NewRequest(http.MethodDelete, "/v1/sessions/"+created.ID.String(), nil)
	rec := httptest.NewRecorder()
	sessions.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/sessions/"+created.ID.String(), nil)
	rec = httptest.NewRecorder()
	sessions.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionMethodNotAllowed(t *testing.T) {
	sessions, _, _ := setupHandlers(t)

	req := httptest.NewRequest(http.MethodPatch, "/v1/sessions", nil)
	rec := httptest.NewRecorder()
	sessions.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
