package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"homehelpBack/internal/models"
)

var notFoundErrors = []error{
	models.ErrNoRecord,
	models.ErrUserNotFound,
	models.ErrServiceNotFound,
	models.ErrBookingNotFound,
	models.ErrHomeownerNotFound,
	models.ErrProviderNotFound,
	models.ErrReportNotFound,
	models.ErrReviewNotFound,
}

var conflictErrors = []error{
	models.ErrStatusConflict,
	models.ErrAlreadyReviewed,
	models.ErrReportExists,
	models.ErrSlotUnavailable,
}

var badRequestErrors = []error{
	models.ErrInvalidTransition,
	models.ErrInvalidStatus,
	models.ErrBookingNotCompleted,
	models.ErrNotAwaitingConfirm,
	models.ErrInvalidRating,
	models.ErrDisputeReasonEmpty,
	models.ErrReportResolved,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognized
// is a server error: logged in full, reported to the client without detail.
func respondError(w http.ResponseWriter, errorLog *log.Logger, err error) {
	switch {
	case matchesAny(err, notFoundErrors):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrPermissionDenied):
		respondJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case matchesAny(err, conflictErrors):
		respondJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case matchesAny(err, badRequestErrors):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case isForeignKeyConstraintError(err):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "related record does not exist"})
	default:
		if errorLog != nil {
			errorLog.Printf("internal error: %v", err)
		}
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}
