package models

import (
	"errors"
)

var (
	ErrNoRecord            = errors.New("models: no matching record found")
	ErrUserNotFound        = errors.New("models: user not found")
	ErrServiceNotFound     = errors.New("models: service not found")
	ErrBookingNotFound     = errors.New("models: booking not found")
	ErrHomeownerNotFound   = errors.New("models: homeowner profile not found")
	ErrProviderNotFound    = errors.New("models: provider not found")
	ErrReportNotFound      = errors.New("models: report not found")
	ErrReviewNotFound      = errors.New("models: review not found")
	ErrPermissionDenied    = errors.New("models: permission denied")
	ErrInvalidTransition   = errors.New("models: invalid status transition")
	ErrStatusConflict      = errors.New("models: booking status changed concurrently")
	ErrBookingNotCompleted = errors.New("models: booking is not completed")
	ErrNotAwaitingConfirm  = errors.New("models: booking is not awaiting homeowner confirmation")
	ErrInvalidRating       = errors.New("models: rating must be between 1 and 5")
	ErrDisputeReasonEmpty  = errors.New("models: dispute reason is required")
	ErrAlreadyReviewed     = errors.New("models: review already exists for this booking")
	ErrReportExists        = errors.New("models: report already exists for this booking")
	ErrReportResolved      = errors.New("models: report already resolved")
	ErrInvalidStatus       = errors.New("models: invalid booking status")
	ErrSlotUnavailable     = errors.New("models: time slot is not available")
)
