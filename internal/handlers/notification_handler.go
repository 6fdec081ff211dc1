package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"homehelpBack/internal/models"
	"homehelpBack/internal/services"
)

type NotificationHandler struct {
	Service  *services.NotificationService
	ErrorLog *log.Logger
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	notifications, err := h.Service.ListNotifications(r.Context(), actor.ID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	respondJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if err := h.Service.MarkRead(r.Context(), actor.ID); err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) SaveToken(w http.ResponseWriter, r *http.Request) {
	var in models.NotifyToken
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if in.Token == "" {
		badRequest(w, "token is required")
		return
	}

	actor := actorFromRequest(r)
	if err := h.Service.SaveToken(r.Context(), actor.ID, in.Token); err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *NotificationHandler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(":token")
	actor := actorFromRequest(r)
	if err := h.Service.DeleteToken(r.Context(), actor.ID, token); err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
