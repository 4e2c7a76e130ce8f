package domain

import "time"

type CauseRequestStatus string

const (
	CauseRequestStatusPending  CauseRequestStatus = "pending"
	CauseRequestStatusApproved CauseRequestStatus = "approved"
)

type CauseRequest struct {
	ID             int32              `json:"id"`
	OrgIdentifier  string             `json:"org_identifier"`
	OrgName        string             `json:"org_name"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	GoalAmount     int64              `json:"goal_amount"`
	ImageReference string             `json:"image_reference"`
	Status         CauseRequestStatus `json:"status"`
	SubmittedAt    time.Time          `json:"submitted_at"`
	ApprovedAt     *time.Time         `json:"approved_at"`
}
