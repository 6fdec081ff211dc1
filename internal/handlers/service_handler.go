package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"homehelpBack/internal/models"
	"homehelpBack/internal/services"
)

const maxImageSize = 10 << 20 // 10 MB

type ServiceHandler struct {
	Service  *services.ServiceService
	ErrorLog *log.Logger
}

func validateServiceInput(in models.ServiceInput) string {
	if strings.TrimSpace(in.Title) == "" {
		return "title is required"
	}
	if in.Price <= 0 {
		return "price must be positive"
	}
	if in.DurationMinutes <= 0 || in.DurationMinutes%30 != 0 {
		return "duration_minutes must be a positive multiple of 30"
	}
	return ""
}

func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var in models.ServiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if msg := validateServiceInput(in); msg != "" {
		badRequest(w, msg)
		return
	}

	svc, err := h.Service.CreateService(r.Context(), actorFromRequest(r), in)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusCreated, svc)
}

func (h *ServiceHandler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	serviceID := r.URL.Query().Get(":id")
	svc, err := h.Service.GetService(r.Context(), serviceID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, svc)
}

func (h *ServiceHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListServices(r.Context())
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	if list == nil {
		list = []models.Service{}
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *ServiceHandler) GetMyServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListMyServices(r.Context(), actorFromRequest(r))
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	if list == nil {
		list = []models.Service{}
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	serviceID := r.URL.Query().Get(":id")
	var in models.ServiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if msg := validateServiceInput(in); msg != "" {
		badRequest(w, msg)
		return
	}

	svc, err := h.Service.UpdateService(r.Context(), actorFromRequest(r), serviceID, in)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, svc)
}

func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	serviceID := r.URL.Query().Get(":id")
	if err := h.Service.DeactivateService(r.Context(), actorFromRequest(r), serviceID); err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ServiceHandler) UploadServiceImage(w http.ResponseWriter, r *http.Request) {
	serviceID := r.URL.Query().Get(":id")
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		badRequest(w, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		badRequest(w, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	url, err := h.Service.UploadServiceImage(r.Context(), actorFromRequest(r), serviceID, data, contentType)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"image": url})
}
