package customers

import "time"

// CustomerType classifies who we are selling to.
type CustomerType string

const (
	TypeIndividual CustomerType = "Individual"
	TypeArchitect  CustomerType = "Architect"
	TypeBuilder    CustomerType = "Builder"
	TypeCorporate  CustomerType = "Corporate"
)

func (t CustomerType) IsValid() bool {
	switch t {
	case TypeIndividual, TypeArchitect, TypeBuilder, TypeCorporate:
		return true
	}
	return false
}

// LifecycleStage tracks where a customer sits in the relationship.
// Customers are never deleted; Inactive is the soft end state.
type LifecycleStage string

const (
	StageLead     LifecycleStage = "Lead"
	StageProspect LifecycleStage = "Prospect"
	StageCustomer LifecycleStage = "Customer"
	StageVIP      LifecycleStage = "VIP"
	StageInactive LifecycleStage = "Inactive"
)

func (s LifecycleStage) IsValid() bool {
	switch s {
	case StageLead, StageProspect, StageCustomer, StageVIP, StageInactive:
		return true
	}
	return false
}

type Customer struct {
	ID             int64          `json:"id"`
	CustomerType   CustomerType   `json:"customer_type"`
	FullName       string         `json:"full_name"`
	CompanyName    *string        `json:"company_name,omitempty"`
	Phone          string         `json:"phone"`
	WhatsApp       *string        `json:"whatsapp,omitempty"`
	Email          *string        `json:"email,omitempty"`
	Address        *string        `json:"address,omitempty"`
	City           *string        `json:"city,omitempty"`
	Pincode        *string        `json:"pincode,omitempty"`
	GSTIN          *string        `json:"gstin,omitempty"`
	Source         string         `json:"source"`
	AssignedTo     *int64         `json:"assigned_to,omitempty"`
	Divisions      []string       `json:"linked_divisions"`
	LifecycleStage LifecycleStage `json:"lifecycle_stage"`
	LifetimeValue  float64        `json:"lifetime_value"`
	Notes          *string        `json:"notes,omitempty"`
	Tags           []string       `json:"tags"`
	CreatedBy      int64          `json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
