package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusHalfDay Status = "half_day"
	StatusLate    Status = "late"
)

type Record struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	CheckIn         time.Time  `json:"check_in"`
	CheckOut        *time.Time `json:"check_out,omitempty"`
	LocationLat     float64    `json:"location_lat"`
	LocationLng     float64    `json:"location_lng"`
	LocationAddress *string    `json:"location_address,omitempty"`
	Status          Status     `json:"status"`
	Notes           *string    `json:"notes,omitempty"`
}
