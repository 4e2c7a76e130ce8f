package domain

import "time"

type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "pending"
	RegistrationStatusApproved RegistrationStatus = "approved"
)

// Registration is one onboarding submission from a prospective organization.
// UniqueID and ApprovedAt are set together, exactly once, on approval.
type Registration struct {
	ID                 int32              `json:"id"`
	OrgName            string             `json:"org_name"`
	ContactEmail       string             `json:"contact_email"`
	ContactPerson      string             `json:"contact_person"`
	SubmittedDocuments []string           `json:"submitted_documents"`
	Status             RegistrationStatus `json:"status"`
	UniqueID           *string            `json:"unique_id"`
	SubmittedAt        time.Time          `json:"submitted_at"`
	ApprovedAt         *time.Time         `json:"approved_at"`
}

func (r *Registration) IsApproved() bool {
	return r.Status == RegistrationStatusApproved && r.UniqueID != nil
}
