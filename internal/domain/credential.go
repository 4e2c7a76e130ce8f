package domain

import "time"

// Credential is the login secret bound to one organization identifier.
type Credential struct {
	UniqueID   string    `json:"unique_id"`
	Username   string    `json:"username"`
	SecretHash string    `json:"secret_hash"`
	OrgName    string    `json:"org_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// IdentifierStatus is the answer to an identifier check.
type IdentifierStatus struct {
	HasCredentials bool   `json:"has_credentials"`
	ValidID        bool   `json:"valid_id"`
	OrgName        string `json:"org_name,omitempty"`
}
