package businessareas

import "time"

// Area is a business division of the retailer, e.g. furniture or
// interiors. Enquiries, quotations, orders, petty cash and stock all
// carry an area name; this table is the authoritative list.
type Area struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
