package quotations

type LineItemRequest struct {
	Description     string  `json:"description" validate:"required,max=500"`
	ProductCode     *string `json:"product_code,omitempty" validate:"omitempty,max=50"`
	Quantity        float64 `json:"quantity" validate:"required,gt=0"`
	Unit            string  `json:"unit" validate:"required,max=20"`
	UnitPrice       float64 `json:"unit_price" validate:"gte=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
	TaxPercent      float64 `json:"tax_percent" validate:"gte=0"`
}

type CreateQuotationRequest struct {
	CustomerID int64             `json:"customer_id" validate:"required,gt=0"`
	EnquiryID  *int64            `json:"enquiry_id,omitempty" validate:"omitempty,gt=0"`
	Division   string            `json:"division" validate:"required,max=100"`
	ValidDays  int               `json:"valid_days" validate:"gte=0,lte=365"`
	Terms      *string           `json:"terms,omitempty"`
	Notes      *string           `json:"notes,omitempty"`
	LineItems  []LineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

type ReviseQuotationRequest struct {
	ValidDays int               `json:"valid_days" validate:"gte=0,lte=365"`
	Terms     *string           `json:"terms,omitempty"`
	Notes     *string           `json:"notes,omitempty"`
	LineItems []LineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

type RejectQuotationRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type ListQuotationsRequest struct {
	CustomerID *int64  `json:"customer_id,omitempty"`
	Division   *string `json:"division,omitempty"`
	Status     *Status `json:"status,omitempty"`
	Limit      int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset     int     `json:"offset" validate:"gte=0"`
}
