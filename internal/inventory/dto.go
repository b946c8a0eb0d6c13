package inventory

import "time"

type CreateItemRequest struct {
	Division      string  `json:"division" validate:"required,max=100"`
	StoreLocation string  `json:"store_location" validate:"required,max=200"`
	ItemName      string  `json:"item_name" validate:"required,max=200"`
	ItemCode      string  `json:"item_code" validate:"required,max=50"`
	Category      string  `json:"category" validate:"required,max=100"`
	Quantity      int     `json:"quantity" validate:"gte=0"`
	Reserved      int     `json:"reserved" validate:"gte=0"`
	Unit          string  `json:"unit" validate:"required,max=20"`
	ReorderLevel  int     `json:"reorder_level" validate:"gte=0"`
	UnitPrice     float64 `json:"unit_price" validate:"gte=0"`
	Supplier      *string `json:"supplier,omitempty"`
}

type UpdateItemRequest struct {
	StoreLocation *string    `json:"store_location,omitempty"`
	ItemName      *string    `json:"item_name,omitempty" validate:"omitempty,max=200"`
	Category      *string    `json:"category,omitempty"`
	Quantity      *int       `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Reserved      *int       `json:"reserved,omitempty" validate:"omitempty,gte=0"`
	Unit          *string    `json:"unit,omitempty"`
	ReorderLevel  *int       `json:"reorder_level,omitempty" validate:"omitempty,gte=0"`
	UnitPrice     *float64   `json:"unit_price,omitempty" validate:"omitempty,gte=0"`
	Supplier      *string    `json:"supplier,omitempty"`
	LastRestocked *time.Time `json:"last_restocked,omitempty"`
}

type ListItemsRequest struct {
	Division *string `json:"division,omitempty"`
	Category *string `json:"category,omitempty"`
	Search   *string `json:"search,omitempty"`
	LowStock bool    `json:"low_stock"`
	Limit    int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset   int     `json:"offset" validate:"gte=0"`
}
