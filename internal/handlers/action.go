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

// ActionRequest is one player command. Target carries the room name,
// item name, NPC first name, or dialogue topic depending on the action;
// Index selects a travel destination.
type ActionRequest struct {
	Action string `json:"action"`
	Target string `json:"target,omitempty"`
	Index  *int   `json:"index,omitempty"`
}

// ActionHandler dispatches player commands against a stored session.
// Route: POST /v1/sessions/{id}/action
type ActionHandler struct {
	sessions *SessionHandler
	resolver *engine.Resolver
	storage  storage.Storage
	master   *world.World
	logger   *slog.Logger
}

func NewActionHandler(sessions *SessionHandler, master *world.World, resolver *engine.Resolver, storage storage.Storage, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{
		sessions: sessions,
		resolver: resolver,
		storage:  storage,
		master:   master,
		logger:   logger,
	}
}

func (h *ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions/"), "/")
	idStr, ok := strings.CutSuffix(path, "/action")
	if !ok {
		writeError(w, h.logger, http.StatusNotFound, "Not found")
		return
	}
	id, err := uuid.Parse(strings.Trim(idStr, "/"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'action' field.")
		return
	}

	s, ok := h.sessions.restoreSession(w, r, id)
	if !ok {
		return
	}

	if s.Status != state.StatusActive {
		writeError(w, h.logger, http.StatusConflict, "The game has ended.")
		return
	}

	message, ok := h.dispatch(s, req)
	if !ok {
		writeError(w, h.logger, http.StatusBadRequest, "Unknown action: "+req.Action)
		return
	}

	snap := state.Capture(s, h.master)
	if err := h.storage.SaveSnapshot(r.Context(), s.ID, snap); err != nil {
		h.logger.Error("Failed to save snapshot", "uuid", s.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.logger.Debug("Action resolved", "uuid", s.ID, "action", req.Action, "status", s.Status)
	if err := json.NewEncoder(w).Encode(h.sessions.sessionResponse(s, message)); err != nil {
		h.logger.Error("Failed to encode action response", "error", err)
	}
}

func (h *ActionHandler) dispatch(s *state.Session, req ActionRequest) (string, bool) {
	switch engine.Action(strings.ToLower(req.Action)) {
	case engine.ActionMove:
		return h.resolver.Move(s, req.Target), true
	case engine.ActionTravel:
		if req.Index == nil {
			return "Invalid travel destination.", true
		}
		return h.resolver.Travel(s, *req.Index), true
	case engine.ActionPickup:
		return h.resolver.Pickup(s, req.Target), true
	case engine.ActionInteract:
		if req.Target != "" {
			return h.resolver.Talk(s, req.Target), true
		}
		return h.resolver.Interact(s), true
	case engine.ActionKill:
		return h.resolver.Kill(s, req.Target), true
	case engine.ActionPlant:
		return h.resolver.Plant(s), true
	case engine.ActionDrop:
		return h.resolver.Drop(s), true
	case engine.ActionQuit:
		return h.resolver.Quit(s), true
	default:
		if strings.EqualFold(req.Action, "trade") {
			return h.resolver.Trade(s, req.Target), true
		}
		return "", false
	}
}
