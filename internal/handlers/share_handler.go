package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/tweakforge/tweakforge/internal/models"
	"github.com/tweakforge/tweakforge/internal/services/sharecode"
)

// ShareHandler encodes selections into share tokens and decodes them
// back.
type ShareHandler struct {
	codec   *sharecode.Codec
	baseURL string
	logger  arbor.ILogger
}

func NewShareHandler(codec *sharecode.Codec, baseURL string, logger arbor.ILogger) *ShareHandler {
	return &ShareHandler{
		codec:   codec,
		baseURL: baseURL,
		logger:  logger,
	}
}

// EncodeHandler handles POST /api/share: selection in, share token and
// full URL out.
func (h *ShareHandler) EncodeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var build models.BuildToEncode
	if err := json.NewDecoder(r.Body).Decode(&build); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := validateBuild(&build); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.codec.Encode(build)
	if err != nil {
		h.logger.Error().Err(err).Msg("Share token encode failed")
		WriteError(w, http.StatusInternalServerError, "Failed to create share link")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"token": token,
		"url":   h.baseURL + token,
	})
}

// DecodeHandler handles GET /api/share/{token}. Tokens from newer
// schema versions are rejected; tokens referencing retired or unknown
// ids decode with warnings.
func (h *ShareHandler) DecodeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	token := strings.TrimPrefix(r.URL.Path, "/api/share/")
	if token == "" || strings.Contains(token, "/") {
		WriteError(w, http.StatusBadRequest, "Missing share token")
		return
	}

	build, err := h.codec.Decode(token)
	if err != nil {
		switch {
		case errors.Is(err, sharecode.ErrUnsupportedVersion):
			WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, sharecode.ErrMalformedToken):
			WriteError(w, http.StatusBadRequest, "Invalid share link")
		default:
			h.logger.Error().Err(err).Msg("Share token decode failed")
			WriteError(w, http.StatusInternalServerError, "Failed to decode share link")
		}
		return
	}

	if build.SkippedCount > 0 {
		h.logger.Debug().
			Int("skipped", build.SkippedCount).
			Msg("Share token decoded with skipped entries")
	}

	WriteJSON(w, http.StatusOK, build)
}

// validateBuild rejects malformed enum values in an encode request.
func validateBuild(build *models.BuildToEncode) error {
	if build.CPU != "" && !build.CPU.IsValid() {
		return fmt.Errorf("unknown cpu vendor %q", build.CPU)
	}
	if build.GPU != "" && !build.GPU.IsValid() {
		return fmt.Errorf("unknown gpu vendor %q", build.GPU)
	}
	if build.DNS != "" && !build.DNS.IsValid() {
		return fmt.Errorf("unknown dns provider %q", build.DNS)
	}
	for _, brand := range build.Peripherals {
		if !brand.IsValid() {
			return fmt.Errorf("unknown peripheral brand %q", brand)
		}
	}
	for _, brand := range build.MonitorSoftware {
		if !brand.IsValid() {
			return fmt.Errorf("unknown monitor brand %q", brand)
		}
	}
	return nil
}
