package models

import (
	"time"
)

type Review struct {
	ID            string     `json:"id"`
	BookingID     string     `json:"booking_id"`
	ServiceID     string     `json:"service_id"`
	HomeownerID   string     `json:"homeowner_id"`
	Rating        int        `json:"rating"`
	ReviewText    string     `json:"review_text"`
	HomeownerName string     `json:"homeowner_name"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type ReviewInput struct {
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
}
