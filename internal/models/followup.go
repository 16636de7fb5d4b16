package models

import "time"

// FollowUp is a scheduled action against one foundation, removed with
// its parent via the schema cascade.
type FollowUp struct {
	ID           int64     `json:"id"`
	FoundationID int64     `json:"foundation_id"`
	FollowUpDate Date      `json:"follow_up_date"`
	Action       string    `json:"action"`
	Completed    bool      `json:"completed"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}
