// This file implements the VHC read endpoints consumed by the dashboard:
// the normalized summary, the financial totals and the workflow status.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/torquehq/torque/internal/domain"
	"github.com/torquehq/torque/internal/service"
)

// VhcHandler handles VHC dashboard requests.
type VhcHandler struct {
	vhcService service.VhcService
	logger     *slog.Logger
}

// NewVhcHandler creates a new VhcHandler.
func NewVhcHandler(vhcService service.VhcService, logger *slog.Logger) *VhcHandler {
	return &VhcHandler{
		vhcService: vhcService,
		logger:     logger,
	}
}

// RegisterRoutes registers the VHC routes on the given mux.
func (h *VhcHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /jobs/{id}/vhc/summary", h.GetSummary)
	mux.HandleFunc("GET /jobs/{id}/vhc/financials", h.GetFinancials)
	mux.HandleFunc("GET /jobs/{id}/vhc/status", h.GetStatus)
}

// GetSummary returns the normalized severity summary for a job.
func (h *VhcHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.jobID(w, r)
	if !ok {
		return
	}

	summary, err := h.vhcService.Summary(r.Context(), jobID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	h.writeJSON(w, summary)
}

// GetFinancials returns the authorized and declined totals for a job.
func (h *VhcHandler) GetFinancials(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.jobID(w, r)
	if !ok {
		return
	}

	totals, err := h.vhcService.FinancialTotals(r.Context(), jobID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	h.writeJSON(w, totals)
}

// GetStatus returns the job's canonical VHC workflow state. A job with no
// determinable state returns a null status rather than an error.
func (h *VhcHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.jobID(w, r)
	if !ok {
		return
	}

	status, err := h.vhcService.DashboardStatus(r.Context(), jobID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var body struct {
		Status *string `json:"status"`
	}
	if status != "" {
		s := status.String()
		body.Status = &s
	}
	h.writeJSON(w, body)
}

// jobID parses the job id path segment, writing a 400 on malformed input.
func (h *VhcHandler) jobID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("vhc.job_id", "invalid job id"))
		return uuid.Nil, false
	}
	return id, true
}

// writeJSON writes a 200 JSON response.
func (h *VhcHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
