package orders

type CreateOrderRequest struct {
	QuotationID          int64   `json:"quotation_id" validate:"required,gt=0"`
	AdvancePaid          float64 `json:"advance_paid" validate:"gte=0"`
	ExpectedDeliveryDays int     `json:"expected_delivery_days" validate:"required,gt=0,lte=365"`
	Notes                *string `json:"notes,omitempty"`
}

type RecordPaymentRequest struct {
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Reference *string `json:"reference,omitempty"`
}

type AdvanceStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

type ListOrdersRequest struct {
	CustomerID *int64  `json:"customer_id,omitempty"`
	Division   *string `json:"division,omitempty"`
	Status     *Status `json:"status,omitempty"`
	Limit      int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset     int     `json:"offset" validate:"gte=0"`
}
