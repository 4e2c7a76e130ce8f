package domain

// Cause is a published, publicly visible fundraising entry.
// OrgName is nil for causes the administrator created directly.
type Cause struct {
	ID             int32   `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	GoalAmount     int64   `json:"goal_amount"`
	RaisedAmount   int64   `json:"raised_amount"`
	ImageReference string  `json:"image_reference"`
	OrgName        *string `json:"org_name,omitempty"`
}

// CauseFromRequest builds the catalog entry for an approved request.
func CauseFromRequest(req *CauseRequest) *Cause {
	orgName := req.OrgName
	return &Cause{
		Title:          req.Title,
		Description:    req.Description,
		GoalAmount:     req.GoalAmount,
		RaisedAmount:   0,
		ImageReference: req.ImageReference,
		OrgName:        &orgName,
	}
}
