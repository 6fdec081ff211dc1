package models

import (
	"time"
)

type Service struct {
	ID              string     `json:"id"`
	ProviderID      string     `json:"provider_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Price           float64    `json:"price"`
	DurationMinutes int        `json:"duration_minutes"`
	Image           *string    `json:"image,omitempty"`
	Rating          float64    `json:"rating"`
	ReviewCount     int        `json:"review_count"`
	ProviderName    string     `json:"provider_name"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// ServiceInput enumerates the fields a provider may set on a service.
// Rating and review_count are derived and never writable through this path.
type ServiceInput struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	Image           *string `json:"image,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}
