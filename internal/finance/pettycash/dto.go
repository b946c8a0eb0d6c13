package pettycash

type SubmitRequest struct {
	Division string   `json:"division" validate:"required,max=100"`
	Amount   float64  `json:"amount" validate:"required,gt=0"`
	Purpose  string   `json:"purpose" validate:"required,max=500"`
	Category Category `json:"category" validate:"required"`
	Notes    *string  `json:"notes,omitempty"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type ListRequests struct {
	Status      *Status `json:"status,omitempty"`
	Division    *string `json:"division,omitempty"`
	RequestedBy *int64  `json:"requested_by,omitempty"`
	Limit       int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset      int     `json:"offset" validate:"gte=0"`
}
