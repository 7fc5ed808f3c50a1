package handlers

import (
	"bytes"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"

	"github.com/tweakforge/tweakforge/internal/catalog"
	"github.com/tweakforge/tweakforge/internal/interfaces"
	"github.com/tweakforge/tweakforge/internal/services/compiler"
)

// CatalogHandler serves the optimization catalog, presets, software
// packages and DNS providers.
type CatalogHandler struct {
	software interfaces.SoftwareService
	markdown goldmark.Markdown
	logger   arbor.ILogger
}

func NewCatalogHandler(softwareService interfaces.SoftwareService, logger arbor.ILogger) *CatalogHandler {
	return &CatalogHandler{
		software: softwareService,
		markdown: goldmark.New(),
		logger:   logger,
	}
}

// optimizationView is one catalog entry as served to clients.
type optimizationView struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	Tier            string `json:"tier"`
	DefaultChecked  bool   `json:"default_checked"`
	Description     string `json:"description"`
	DescriptionHTML string `json:"description_html"`
}

// categoryView groups catalog entries by category in declaration order.
type categoryView struct {
	Category      string             `json:"category"`
	Optimizations []optimizationView `json:"optimizations"`
}

// OptimizationsHandler handles GET /api/optimizations: the full
// catalog grouped by category, plus tiers, defaults and presets.
func (h *CatalogHandler) OptimizationsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	byCategory := make(map[catalog.Category][]optimizationView)
	for _, def := range catalog.Definitions() {
		byCategory[def.Category] = append(byCategory[def.Category], optimizationView{
			Key:             def.Key,
			Name:            def.Name,
			Tier:            string(def.Tier),
			DefaultChecked:  def.DefaultChecked,
			Description:     def.Description,
			DescriptionHTML: h.renderMarkdown(def.Description),
		})
	}

	categories := make([]categoryView, 0, len(catalog.Categories()))
	for _, category := range catalog.Categories() {
		categories = append(categories, categoryView{
			Category:      string(category),
			Optimizations: byCategory[category],
		})
	}

	tiers := make([]string, 0, len(catalog.Tiers()))
	for _, tier := range catalog.Tiers() {
		tiers = append(tiers, string(tier))
	}

	presets := make(map[string][]string, len(catalog.PresetNames()))
	for _, name := range catalog.PresetNames() {
		keys, _ := catalog.PresetKeys(name)
		presets[name] = keys
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories":   categories,
		"tiers":        tiers,
		"defaults":     catalog.DefaultKeys(),
		"presets":      presets,
		"preset_order": catalog.PresetNames(),
	})
}

// PresetsHandler handles GET /api/optimizations/presets: named preset
// base sets in display order.
func (h *CatalogHandler) PresetsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	presets := make(map[string][]string, len(catalog.PresetNames()))
	for _, name := range catalog.PresetNames() {
		keys, _ := catalog.PresetKeys(name)
		presets[name] = keys
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"presets":      presets,
		"preset_order": catalog.PresetNames(),
	})
}

// SoftwareHandler handles GET /api/software: the current winget
// package catalog.
func (h *CatalogHandler) SoftwareHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"packages":       h.software.Catalog(),
		"last_refreshed": h.software.LastRefreshed(),
	})
}

// DNSHandler handles GET /api/dns: the selectable DNS providers with
// their server addresses.
func (h *CatalogHandler) DNSHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"providers": compiler.DNSProviders(),
	})
}

func (h *CatalogHandler) renderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(source), &buf); err != nil {
		h.logger.Warn().Err(err).Msg("Markdown render failed")
		return source
	}
	return buf.String()
}
