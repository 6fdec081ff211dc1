package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"homehelpBack/internal/models"
	"homehelpBack/internal/services"
)

type ReviewHandler struct {
	Service  *services.ReviewService
	ErrorLog *log.Logger
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	bookingID := r.URL.Query().Get(":id")
	var in models.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(in.ReviewText) == "" {
		badRequest(w, "review_text is required")
		return
	}

	review, err := h.Service.CreateReview(r.Context(), actorFromRequest(r), bookingID, in)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) ListReviewsByService(w http.ResponseWriter, r *http.Request) {
	serviceID := r.URL.Query().Get(":service_id")
	reviews, err := h.Service.ListReviewsByService(r.Context(), serviceID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewID := r.URL.Query().Get(":id")
	var in models.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(in.ReviewText) == "" {
		badRequest(w, "review_text is required")
		return
	}

	review, err := h.Service.UpdateReview(r.Context(), actorFromRequest(r), reviewID, in)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := r.URL.Query().Get(":id")
	if err := h.Service.DeleteReview(r.Context(), actorFromRequest(r), reviewID); err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
