package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route (live compile preview)
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - Script compilation
	mux.HandleFunc("/api/script", s.app.ScriptHandler.CompileHandler) // POST - compile selection to script

	// API routes - Share links
	mux.HandleFunc("/api/share", s.app.ShareHandler.EncodeHandler)  // POST - selection to token
	mux.HandleFunc("/api/share/", s.app.ShareHandler.DecodeHandler) // GET /{token} - token to selection

	// API routes - Catalog
	mux.HandleFunc("/api/optimizations", s.app.CatalogHandler.OptimizationsHandler)   // GET - tweak catalog with presets
	mux.HandleFunc("/api/optimizations/presets", s.app.CatalogHandler.PresetsHandler) // GET - named preset base sets
	mux.HandleFunc("/api/software", s.app.CatalogHandler.SoftwareHandler)             // GET - winget package catalog
	mux.HandleFunc("/api/dns", s.app.CatalogHandler.DNSHandler)                       // GET - DNS providers

	// API routes - Apply progress
	mux.HandleFunc("/api/progress/", s.app.ProgressHandler.BuildProgressHandler) // GET/PUT/DELETE /{buildID}

	// API routes - System
	mux.HandleFunc("/api/status", s.app.StatusHandler.Status)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
