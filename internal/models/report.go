package models

import (
	"time"
)

// Report statuses.
const (
	ReportStatusOpen     = "open"
	ReportStatusResolved = "resolved"
)

type Report struct {
	ID            string     `json:"id"`
	BookingID     string     `json:"booking_id"`
	HomeownerID   string     `json:"homeowner_id"`
	ProviderID    string     `json:"provider_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	ServiceTitle  string     `json:"service_title"`
	ProviderName  string     `json:"provider_name"`
	HomeownerName string     `json:"homeowner_name"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type ReportCreateInput struct {
	BookingID   string `json:"booking_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type WarnProviderInput struct {
	WarningMessage string `json:"warning_message"`
}

type SuspendProviderInput struct {
	SuspensionDays   int    `json:"suspension_days"`
	SuspensionReason string `json:"suspension_reason"`
}

// SuspensionResult reports the outcome of a provider suspension, including
// which bookings the cascade cancelled.
type SuspensionResult struct {
	Report              Report    `json:"report"`
	ProviderID          string    `json:"provider_id"`
	SuspensionEndDate   time.Time `json:"suspension_end_date"`
	CancelledCount      int       `json:"cancelled_count"`
	CancelledBookingIDs []string  `json:"cancelled_booking_ids"`
	CancelledHomeowners []string  `json:"-"`
	CancelledTitles     []string  `json:"-"`
}
