package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/tweakforge/tweakforge/internal/interfaces"
	"github.com/tweakforge/tweakforge/internal/models"
)

// ProgressHandler persists per-build apply-progress checklists.
type ProgressHandler struct {
	storage interfaces.ProgressStorage
	logger  arbor.ILogger
}

func NewProgressHandler(storage interfaces.ProgressStorage, logger arbor.ILogger) *ProgressHandler {
	return &ProgressHandler{
		storage: storage,
		logger:  logger,
	}
}

// BuildProgressHandler routes /api/progress/{buildID} by method.
func (h *ProgressHandler) BuildProgressHandler(w http.ResponseWriter, r *http.Request) {
	buildID := strings.TrimPrefix(r.URL.Path, "/api/progress/")
	if buildID == "" || strings.Contains(buildID, "/") {
		WriteError(w, http.StatusBadRequest, "Missing build ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getProgress(w, buildID)
	case http.MethodPut:
		h.saveProgress(w, r, buildID)
	case http.MethodDelete:
		h.deleteProgress(w, buildID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ProgressHandler) getProgress(w http.ResponseWriter, buildID string) {
	progress, err := h.storage.GetProgress(buildID)
	if errors.Is(err, interfaces.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "No progress recorded for this build")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("build_id", buildID).Msg("Failed to load progress")
		WriteError(w, http.StatusInternalServerError, "Failed to load progress")
		return
	}

	WriteJSON(w, http.StatusOK, progress)
}

func (h *ProgressHandler) saveProgress(w http.ResponseWriter, r *http.Request, buildID string) {
	var body struct {
		CompletedSteps []string `json:"completed_steps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	progress := &models.BuildProgress{
		BuildID:        buildID,
		CompletedSteps: body.CompletedSteps,
	}
	if err := h.storage.SaveProgress(progress); err != nil {
		h.logger.Error().Err(err).Str("build_id", buildID).Msg("Failed to save progress")
		WriteError(w, http.StatusInternalServerError, "Failed to save progress")
		return
	}

	WriteSuccess(w, "Progress saved")
}

func (h *ProgressHandler) deleteProgress(w http.ResponseWriter, buildID string) {
	err := h.storage.DeleteProgress(buildID)
	if errors.Is(err, interfaces.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "No progress recorded for this build")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("build_id", buildID).Msg("Failed to delete progress")
		WriteError(w, http.StatusInternalServerError, "Failed to delete progress")
		return
	}

	WriteSuccess(w, "Progress cleared")
}
