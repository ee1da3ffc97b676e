package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/kitcraft/internal/apperror"
	"github.com/sakif/kitcraft/internal/auth"
	"github.com/sakif/kitcraft/internal/genai"
	"github.com/sakif/kitcraft/internal/model"
	"github.com/sakif/kitcraft/internal/service"
)

// KitHandler manages kit generation and the per-user kit collection.
// All routes sit behind RequireAuth; the userID always comes from the
// session context, never from the request body.
type KitHandler struct {
	kits   *service.KitService
	logger *slog.Logger
}

// NewKitHandler creates a KitHandler.
func NewKitHandler(kits *service.KitService, logger *slog.Logger) *KitHandler {
	return &KitHandler{
		kits:   kits,
		logger: logger,
	}
}

// generateRequest is the body for kit generation. The image is optional;
// when present it carries base64 bytes plus the MIME type.
type generateRequest struct {
	Prompt     string            `json:"prompt"`
	SkillLevel model.SkillLevel  `json:"skillLevel"`
	Image      *genai.ImageInput `json:"image,omitempty"`
}

// HandleGenerate generates and persists a new kit.
//
// HTTP: POST /api/kits
// BODY: {"prompt": "a birdhouse", "skillLevel": "Beginner", "image": {...}?}
//
// 201 with the persisted kit on success. A generation failure maps to 502
// with an inline-displayable message and nothing persisted — the client
// stays on its create view and may retry.
//
// One request, one generation: the client disables its submit control while
// a request is in flight; the server deliberately adds no queueing, retry,
// or timeout beyond the generation client's own.
func (h *KitHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	kit, err := h.kits.Generate(r.Context(), userID, req.Prompt, req.SkillLevel, req.Image)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, kit)
}

// HandleList returns the user's kits, newest first.
//
// HTTP: GET /api/kits?limit=20&offset=0
func (h *KitHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	// Unparseable pagination values fall back to service defaults.
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	kits, err := h.kits.List(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, kits)
}

// HandleGetByID returns a single kit owned by the user.
//
// HTTP: GET /api/kits/{id}
//
// Another user's kit ID returns 404, indistinguishable from a kit that
// doesn't exist.
func (h *KitHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	id := r.PathValue("id")

	kit, err := h.kits.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, kit)
}
