package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/tweakforge/tweakforge/internal/interfaces"
	"github.com/tweakforge/tweakforge/internal/models"
	"github.com/tweakforge/tweakforge/internal/services/compiler"
)

// ScriptHandler compiles a selection into a PowerShell script.
type ScriptHandler struct {
	compiler *compiler.Service
	software interfaces.SoftwareService
	logger   arbor.ILogger
}

func NewScriptHandler(compilerService *compiler.Service, softwareService interfaces.SoftwareService, logger arbor.ILogger) *ScriptHandler {
	return &ScriptHandler{
		compiler: compilerService,
		software: softwareService,
		logger:   logger,
	}
}

// compileRequest is the POST /api/script body.
type compileRequest struct {
	Hardware      models.HardwareProfile `json:"hardware"`
	Optimizations []string               `json:"optimizations"`
	Packages      []string               `json:"packages"`
	DNS           models.DNSProvider     `json:"dns"`
}

// validate rejects malformed enum values. Unknown optimization and
// package keys are not errors; the compiler drops them.
func (req *compileRequest) validate() error {
	hw := req.Hardware
	if hw.CPU != "" && !hw.CPU.IsValid() {
		return fmt.Errorf("unknown cpu vendor %q", hw.CPU)
	}
	if hw.GPU != "" && !hw.GPU.IsValid() {
		return fmt.Errorf("unknown gpu vendor %q", hw.GPU)
	}
	for _, brand := range hw.Peripherals {
		if !brand.IsValid() {
			return fmt.Errorf("unknown peripheral brand %q", brand)
		}
	}
	for _, brand := range hw.MonitorSoftware {
		if !brand.IsValid() {
			return fmt.Errorf("unknown monitor brand %q", brand)
		}
	}
	return nil
}

// CompileHandler handles POST /api/script. With ?format=raw the
// response is the bare script text for direct download.
func (h *ScriptHandler) CompileHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := req.validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	selection := models.SelectionState{
		Hardware:      req.Hardware,
		Optimizations: req.Optimizations,
		Packages:      req.Packages,
	}

	script, err := h.compiler.Compile(selection, h.software.Catalog(), req.DNS)
	if err != nil {
		h.logger.Error().Err(err).Msg("Script compilation failed")
		WriteError(w, http.StatusInternalServerError, "Failed to compile script")
		return
	}

	h.logger.Info().
		Str("build_id", script.BuildID).
		Str("risk_profile", script.RiskProfile).
		Int("optimizations", len(req.Optimizations)).
		Msg("Script compiled")

	if r.URL.Query().Get("format") == "raw" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", script.BuildID+".ps1"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(script.Text))
		return
	}

	WriteJSON(w, http.StatusOK, script)
}
