package customers

type CreateCustomerRequest struct {
	CustomerType CustomerType `json:"customer_type" validate:"required"`
	FullName     string       `json:"full_name" validate:"required,min=2,max=200"`
	CompanyName  *string      `json:"company_name,omitempty" validate:"omitempty,max=200"`
	Phone        string       `json:"phone" validate:"required,min=7,max=20"`
	WhatsApp     *string      `json:"whatsapp,omitempty" validate:"omitempty,min=7,max=20"`
	Email        *string      `json:"email,omitempty" validate:"omitempty,email"`
	Address      *string      `json:"address,omitempty"`
	City         *string      `json:"city,omitempty" validate:"omitempty,max=100"`
	Pincode      *string      `json:"pincode,omitempty" validate:"omitempty,max=10"`
	GSTIN        *string      `json:"gstin,omitempty" validate:"omitempty,len=15"`
	Source       string       `json:"source" validate:"required,max=100"`
	AssignedTo   *int64       `json:"assigned_to,omitempty"`
	Divisions    []string     `json:"linked_divisions,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
}

type UpdateCustomerRequest struct {
	CustomerType   *CustomerType   `json:"customer_type,omitempty"`
	FullName       *string         `json:"full_name,omitempty" validate:"omitempty,min=2,max=200"`
	CompanyName    *string         `json:"company_name,omitempty"`
	Phone          *string         `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	WhatsApp       *string         `json:"whatsapp,omitempty"`
	Email          *string         `json:"email,omitempty" validate:"omitempty,email"`
	Address        *string         `json:"address,omitempty"`
	City           *string         `json:"city,omitempty"`
	Pincode        *string         `json:"pincode,omitempty"`
	GSTIN          *string         `json:"gstin,omitempty"`
	Source         *string         `json:"source,omitempty"`
	AssignedTo     *int64          `json:"assigned_to,omitempty"`
	Divisions      []string        `json:"linked_divisions,omitempty"`
	LifecycleStage *LifecycleStage `json:"lifecycle_stage,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
}

type ListCustomersRequest struct {
	Search         *string         `json:"search,omitempty"`
	CustomerType   *CustomerType   `json:"customer_type,omitempty"`
	LifecycleStage *LifecycleStage `json:"lifecycle_stage,omitempty"`
	City           *string         `json:"city,omitempty"`
	Limit          int             `json:"limit" validate:"gte=0,lte=1000"`
	Offset         int             `json:"offset" validate:"gte=0"`
}
