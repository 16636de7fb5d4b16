package models

import "time"

type ApplicationStatus string

const (
	ApplicationDraft     ApplicationStatus = "draft"
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationDraft, ApplicationSubmitted, ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// Application is a grant submission tied to one foundation. Rows are
// removed with their parent foundation via the schema cascade.
type Application struct {
	ID              int64             `json:"id"`
	FoundationID    int64             `json:"foundation_id"`
	ProjectName     string            `json:"project_name"`
	AmountRequested *int64            `json:"amount_requested"`
	SubmissionDate  *Date             `json:"submission_date"`
	DecisionDate    *Date             `json:"decision_date"`
	Status          ApplicationStatus `json:"status"`
	Outcome         *string           `json:"outcome"`
	Notes           *string           `json:"notes"`
	CreatedAt       time.Time         `json:"created_at"`
}
