package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"homehelpBack/internal/models"
	"homehelpBack/internal/services"
)

type BookingHandler struct {
	Service      *services.BookingService
	Availability *services.AvailabilityService
	ErrorLog     *log.Logger
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var in models.BookingCreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if in.ServiceID == "" {
		badRequest(w, "service_id is required")
		return
	}
	if _, err := time.Parse("2006-01-02", in.ScheduledDate); err != nil {
		badRequest(w, "scheduled_date must be YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("15:04", in.ScheduledTime); err != nil {
		badRequest(w, "scheduled_time must be HH:MM")
		return
	}
	if strings.TrimSpace(in.Address) == "" {
		badRequest(w, "address is required")
		return
	}

	booking, err := h.Service.CreateBooking(r.Context(), actorFromRequest(r), in)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.URL.Query().Get(":id")
	booking, err := h.Service.GetBooking(r.Context(), actorFromRequest(r), bookingID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	bookingID := r.URL.Query().Get(":id")
	var in models.BookingStatusInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if in.Status == "" {
		badRequest(w, "status is required")
		return
	}

	booking, err := h.Service.UpdateStatus(r.Context(), actorFromRequest(r), bookingID, in.Status)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ConfirmCompletion(w http.ResponseWriter, r *http.Request) {
	bookingID := r.URL.Query().Get(":id")
	var in models.BookingConfirmation
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	booking, report, err := h.Service.ConfirmCompletion(r.Context(), actorFromRequest(r), bookingID, in)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	if report != nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"booking": booking,
			"report":  report,
		})
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) RateBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.URL.Query().Get(":id")
	var in models.RatingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	booking, err := h.Service.RateBooking(r.Context(), actorFromRequest(r), bookingID, in)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ListHomeownerBookings(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if actor.Role != models.RoleHomeowner {
		respondError(w, h.ErrorLog, models.ErrPermissionDenied)
		return
	}
	list, err := h.Service.ListForHomeowner(r.Context(), actor.ID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *BookingHandler) ListProviderBookings(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if actor.Role != models.RoleProvider {
		respondError(w, h.ErrorLog, models.ErrPermissionDenied)
		return
	}
	list, err := h.Service.ListForProvider(r.Context(), actor.ID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *BookingHandler) ProviderStats(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if actor.Role != models.RoleProvider {
		respondError(w, h.ErrorLog, models.ErrPermissionDenied)
		return
	}
	stats, err := h.Service.StatsForProvider(r.Context(), actor.ID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	var in models.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if in.ServiceID == "" {
		badRequest(w, "service_id is required")
		return
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		badRequest(w, "date must be YYYY-MM-DD")
		return
	}

	resp, err := h.Availability.ComputeAvailability(r.Context(), in.ServiceID, in.Date, in.Duration)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
