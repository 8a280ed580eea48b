package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jmcardle/gatewalker/internal/storage"
	"github.com/jmcardle/gatewalker/pkg/engine"
	"github.com/jmcardle/gatewalker/pkg/state"
	"github.com/jmcardle/gatewalker/pkg/world"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionResponse is the API projection of a session: the snapshot plus
// the derived display state a front-end needs to render a turn.
type SessionResponse struct {
	ID               uuid.UUID       `json:"id"`
	Status           state.Status    `json:"status"`
	Message          string          `json:"message,omitempty"`
	RoomStatus       string          `json:"room_status"`
	AvailableActions []engine.Action `json:"available_actions"`
	Objectives       []string        `json:"objectives,omitempty"`
	Inventory        []string        `json:"inventory,omitempty"`
}

// SessionHandler manages session lifecycle.
// Routes:
// POST /v1/sessions         - Create a new session
// GET /v1/sessions/{id}     - Read session state by ID
// DELETE /v1/sessions/{id}  - Delete session by ID
type SessionHandler struct {
	master   *world.World
	resolver *engine.Resolver
	storage  storage.Storage
	logger   *slog.Logger
}

func NewSessionHandler(master *world.World, resolver *engine.Resolver, storage storage.Storage, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		master:   master,
		resolver: resolver,
		storage:  storage,
		logger:   logger,
	}
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")

	var sessionID uuid.UUID
	if path != "" {
		var err error
		sessionID, err = uuid.Parse(path)
		if err != nil {
			h.logger.Warn("Invalid session ID", "id", path, "error", err)
			writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
			return
		}
	}

	switch r.Method {
	case http.MethodPost:
		if sessionID != uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "POST does not take a session ID")
			return
		}
		h.handleCreate(w, r)

	case http.MethodGet:
		if sessionID == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Session ID is required for GET requests")
			return
		}
		h.handleRead(w, r, sessionID)

	case http.MethodDelete:
		if sessionID == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Session ID is required for DELETE requests")
			return
		}
		h.handleDelete(w, r, sessionID)

	default:
		h.logger.Warn("Method not allowed for sessions endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST, GET, DELETE")
	}
}

type CreateSessionRequest struct {
	PlayerName string `json:"player_name"`
}

type CreateSessionResponse struct {
	SessionResponse
	Intro string `json:"intro"`
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'player_name' field.")
		return
	}
	if req.PlayerName == "" {
		writeError(w, h.logger, http.StatusBadRequest, "player_name is required")
		return
	}

	s, err := h.resolver.NewSession(h.master.Clone(), req.PlayerName)
	if err != nil {
		h.logger.Error("Failed to create session", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to create session")
		return
	}

	snap := state.Capture(s, h.master)
	if err := h.storage.SaveSnapshot(r.Context(), s.ID, snap); err != nil {
		h.logger.Error("Failed to save snapshot", "uuid", s.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.logger.Info("Session created", "uuid", s.ID, "player", req.PlayerName)
	w.WriteHeader(http.StatusCreated)
	resp := CreateSessionResponse{
		SessionResponse: h.sessionResponse(s, ""),
		Intro:           h.resolver.Intro(),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode session response", "error", err)
	}
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	s, ok := h.restoreSession(w, r, id)
	if !ok {
		return
	}
	if err := json.NewEncoder(w).Encode(h.sessionResponse(s, "")); err != nil {
		h.logger.Error("Failed to encode session response", "error", err)
	}
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteSnapshot(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete snapshot", "uuid", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// restoreSession loads a snapshot and rebuilds the session onto a fresh
// world clone. It writes the error response itself on failure.
func (h *SessionHandler) restoreSession(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*state.Session, bool) {
	snap, err := h.storage.LoadSnapshot(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load snapshot", "uuid", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return nil, false
	}
	if snap == nil {
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return nil, false
	}
	s, err := snap.Restore(h.master.Clone())
	if err != nil {
		h.logger.Error("Failed to restore session", "uuid", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to restore session")
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) sessionResponse(s *state.Session, message string) SessionResponse {
	return SessionResponse{
		ID:               s.ID,
		Status:           s.Status,
		Message:          message,
		RoomStatus:       h.resolver.RoomStatus(s),
		AvailableActions: h.resolver.AvailableActions(s),
		Objectives:       s.Objectives,
		Inventory:        s.Player.Items(),
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}
