package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"homehelpBack/internal/models"
	"homehelpBack/internal/services"
)

type ReportHandler struct {
	Service  *services.ReportService
	ErrorLog *log.Logger
}

func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var in models.ReportCreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if in.BookingID == "" {
		badRequest(w, "booking_id is required")
		return
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		badRequest(w, "title and description are required")
		return
	}

	report, err := h.Service.CreateReport(r.Context(), actorFromRequest(r), in)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusCreated, report)
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := r.URL.Query().Get(":id")
	report, err := h.Service.GetReport(r.Context(), actorFromRequest(r), reportID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != models.ReportStatusOpen && status != models.ReportStatusResolved {
		badRequest(w, "status must be open or resolved")
		return
	}
	reports, err := h.Service.ListReports(r.Context(), actorFromRequest(r), status)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}
	respondJSON(w, http.StatusOK, reports)
}

func (h *ReportHandler) DismissReport(w http.ResponseWriter, r *http.Request) {
	reportID := r.URL.Query().Get(":id")
	report, err := h.Service.DismissReport(r.Context(), actorFromRequest(r), reportID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) WarnProvider(w http.ResponseWriter, r *http.Request) {
	reportID := r.URL.Query().Get(":id")
	var in models.WarnProviderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(in.WarningMessage) == "" {
		badRequest(w, "warning_message is required")
		return
	}

	report, warning, err := h.Service.WarnProvider(r.Context(), actorFromRequest(r), reportID, in)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"report":  report,
		"warning": warning,
	})
}

func (h *ReportHandler) SuspendProvider(w http.ResponseWriter, r *http.Request) {
	reportID := r.URL.Query().Get(":id")
	var in models.SuspendProviderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if in.SuspensionDays <= 0 {
		badRequest(w, "suspension_days must be positive")
		return
	}
	if strings.TrimSpace(in.SuspensionReason) == "" {
		badRequest(w, "suspension_reason is required")
		return
	}

	result, err := h.Service.SuspendProvider(r.Context(), actorFromRequest(r), reportID, in)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ListMyWarnings lets a provider see warnings issued against them.
func (h *ReportHandler) ListMyWarnings(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	warnings, err := h.Service.ListWarnings(r.Context(), actor, actor.ID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	if warnings == nil {
		warnings = []models.Warning{}
	}
	respondJSON(w, http.StatusOK, warnings)
}
