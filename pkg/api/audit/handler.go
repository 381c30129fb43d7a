// Package audit provides HTTP API handlers for running declaration audits
// and retrieving stored reports.
package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"declaration_audit/pkg/core/pipeline"
	"declaration_audit/pkg/core/store"
)

var (
	orchestrator *pipeline.Orchestrator
	repo         store.AuditRepository
)

// InitHandler wires the handlers to an orchestrator and a report repository.
// repo may be nil when no storage is configured; the report endpoint then
// returns 503.
func InitHandler(o *pipeline.Orchestrator, r store.AuditRepository) {
	orchestrator = o
	repo = r
}

// RunRequest for the audit run endpoint.
type RunRequest struct {
	FullName    string `json:"full_name"`
	DeclarantID int    `json:"declarant_id"` // Optional namesake filter
	Format      string `json:"format"`       // "json" (default), "text" or "markdown"
}

// HandleRunAudit handles POST /api/audit/run
// Runs the full audit for one declarant and returns the report.
func HandleRunAudit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if orchestrator == nil {
		http.Error(w, "Orchestrator not initialized", http.StatusInternalServerError)
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.FullName == "" {
		http.Error(w, "full_name is required", http.StatusBadRequest)
		return
	}

	startTime := time.Now()
	rep, err := orchestrator.CheckPerson(r.Context(), req.FullName, req.DeclarantID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Audit failed: %v", err), http.StatusInternalServerError)
		return
	}
	log.Printf("[Handler] Audit for %s completed in %v (%d findings)",
		req.FullName, time.Since(startTime), len(rep.Findings))

	switch req.Format {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, rep.Text())
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, rep.Markdown())
	default:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rep)
	}
}

// HandleGetReport handles GET /api/audit/report?key=<declarant key>
// Returns the stored report for a declarant, if any.
func HandleGetReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")

	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if repo == nil {
		http.Error(w, "Report storage not configured", http.StatusServiceUnavailable)
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "key query parameter is required", http.StatusBadRequest)
		return
	}

	rep, err := repo.Load(r.Context(), key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(rep)
}
