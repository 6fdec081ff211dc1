package models

type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

type AvailabilityRequest struct {
	ServiceID string `json:"service_id"`
	Date      string `json:"date"`
	Duration  int    `json:"duration"`
}

type AvailabilityResponse struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"slots"`
}
