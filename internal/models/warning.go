package models

import "time"

// Warning is an append-only log entry issued against a provider.
type Warning struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ReportID  string    `json:"report_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
