package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/tweakforge/tweakforge/internal/catalog"
	"github.com/tweakforge/tweakforge/internal/common"
	"github.com/tweakforge/tweakforge/internal/interfaces"
)

// StatusHandler reports runtime and catalog statistics.
type StatusHandler struct {
	software  interfaces.SoftwareService
	storage   interfaces.ProgressStorage
	logger    arbor.ILogger
	startTime time.Time
}

func NewStatusHandler(softwareService interfaces.SoftwareService, storage interfaces.ProgressStorage, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		software:  softwareService,
		storage:   storage,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Status handles GET /api/status
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	savedBuilds, err := h.storage.CountBuilds()
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to count saved builds")
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":        common.GetVersion(),
		"uptime":         time.Since(h.startTime).Round(time.Second).String(),
		"optimizations":  len(catalog.Definitions()),
		"packages":       len(h.software.Catalog()),
		"last_refreshed": h.software.LastRefreshed(),
		"saved_builds":   savedBuilds,
	})
}
