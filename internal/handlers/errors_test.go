package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"homehelpBack/internal/models"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{models.ErrBookingNotFound, http.StatusNotFound},
		{models.ErrServiceNotFound, http.StatusNotFound},
		{models.ErrReportNotFound, http.StatusNotFound},
		{models.ErrPermissionDenied, http.StatusForbidden},
		{models.ErrStatusConflict, http.StatusConflict},
		{models.ErrAlreadyReviewed, http.StatusConflict},
		{models.ErrReportExists, http.StatusConflict},
		{models.ErrSlotUnavailable, http.StatusConflict},
		{models.ErrInvalidTransition, http.StatusBadRequest},
		{models.ErrInvalidRating, http.StatusBadRequest},
		{models.ErrNotAwaitingConfirm, http.StatusBadRequest},
		{models.ErrDisputeReasonEmpty, http.StatusBadRequest},
		{models.ErrReportResolved, http.StatusBadRequest},
		{errors.New("db exploded"), http.StatusInternalServerError},
	}

	errorLog := log.New(io.Discard, "", 0)
	for _, c := range cases {
		rec := httptest.NewRecorder()
		respondError(rec, errorLog, c.err)
		if rec.Code != c.want {
			t.Errorf("respondError(%v) wrote status %d, want %d", c.err, rec.Code, c.want)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("respondError(%v) Content-Type = %q", c.err, ct)
		}
	}
}

func TestRespondErrorWrapsWithErrorsIs(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := fmt.Errorf("update booking: %w", models.ErrStatusConflict)
	respondError(rec, log.New(io.Discard, "", 0), wrapped)
	if rec.Code != http.StatusConflict {
		t.Fatalf("wrapped conflict mapped to %d, want %d", rec.Code, http.StatusConflict)
	}
}
