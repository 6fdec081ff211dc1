package models

import (
	"time"
)

type Booking struct {
	ID                 string     `json:"id"`
	ServiceID          string     `json:"service_id"`
	HomeownerID        string     `json:"homeowner_id"`
	ProviderID         string     `json:"provider_id"`
	ScheduledDate      string     `json:"scheduled_date"`
	ScheduledTime      string     `json:"scheduled_time"`
	Status             string     `json:"status"`
	Price              float64    `json:"price"`
	Address            string     `json:"address"`
	Notes              *string    `json:"notes,omitempty"`
	ServiceTitle       string     `json:"service_title"`
	ServiceImage       *string    `json:"service_image,omitempty"`
	ProviderName       string     `json:"provider_name"`
	HomeownerName      string     `json:"homeowner_name"`
	Rating             *int       `json:"rating,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

type BookingCreateInput struct {
	ServiceID     string  `json:"service_id"`
	ScheduledDate string  `json:"scheduled_date"`
	ScheduledTime string  `json:"scheduled_time"`
	Address       string  `json:"address"`
	Notes         *string `json:"notes,omitempty"`
}

type BookingStatusInput struct {
	Status string `json:"status"`
}

// BookingConfirmation is the homeowner's answer to a booking awaiting
// confirmation: accept the completion or dispute it with a reason.
type BookingConfirmation struct {
	Confirmed     bool    `json:"confirmed"`
	DisputeReason *string `json:"dispute_reason,omitempty"`
}

type RatingInput struct {
	Rating int `json:"rating"`
}

// BookingList splits bookings the way dashboards consume them.
type BookingList struct {
	Upcoming []Booking `json:"upcoming"`
	Past     []Booking `json:"past"`
}

type BookingStats struct {
	Total     int     `json:"total"`
	Pending   int     `json:"pending"`
	Confirmed int     `json:"confirmed"`
	Completed int     `json:"completed"`
	Cancelled int     `json:"cancelled"`
	Revenue   float64 `json:"revenue"`
}
