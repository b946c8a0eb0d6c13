package attendance

import "time"

type CheckInRequest struct {
	LocationLat     float64 `json:"location_lat" validate:"gte=-90,lte=90"`
	LocationLng     float64 `json:"location_lng" validate:"gte=-180,lte=180"`
	LocationAddress *string `json:"location_address,omitempty" validate:"omitempty,max=500"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type ListRecordsRequest struct {
	UserID   *int64     `json:"user_id,omitempty"`
	FromDate *time.Time `json:"from_date,omitempty"`
	ToDate   *time.Time `json:"to_date,omitempty"`
	Limit    int        `json:"limit" validate:"gte=0,lte=1000"`
	Offset   int        `json:"offset" validate:"gte=0"`
}
