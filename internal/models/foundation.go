package models

import "time"

type FoundationStatus string

const (
	StatusResearch    FoundationStatus = "research"
	StatusDrafting    FoundationStatus = "drafting"
	StatusSubmitted   FoundationStatus = "submitted"
	StatusApproved    FoundationStatus = "approved"
	StatusRejected    FoundationStatus = "rejected"
	StatusNotPursuing FoundationStatus = "not_pursuing"
)

func (s FoundationStatus) Valid() bool {
	switch s {
	case StatusResearch, StatusDrafting, StatusSubmitted, StatusApproved, StatusRejected, StatusNotPursuing:
		return true
	}
	return false
}

// Foundation is a prospective funding source tracked through the
// outreach pipeline.
type Foundation struct {
	ID                  int64            `json:"id"`
	Name                string           `json:"name"`
	URL                 *string          `json:"url"`
	FocusAreas          *string          `json:"focus_areas"`
	GrantMin            *int64           `json:"grant_min"`
	GrantMax            *int64           `json:"grant_max"`
	ApplicationDeadline *Date            `json:"application_deadline"`
	RollingApplications bool             `json:"rolling_applications"`
	FitScore            *int             `json:"fit_score"`
	Status              FoundationStatus `json:"status"`
	Notes               *string          `json:"notes"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// FoundationFilters narrows a foundation listing. Zero/nil members mean
// "no filter"; Status accepts "all" as an alias for unfiltered.
type FoundationFilters struct {
	Status  string
	FitMin  int
	Rolling *bool
}

// FoundationUpdate carries a partial update. Each field is three-state:
// absent keys leave the column unchanged, null clears it, a value
// replaces it. Status is non-nullable, so a null or empty status is
// ignored rather than applied.
type FoundationUpdate struct {
	Status              Field[FoundationStatus] `json:"status"`
	FitScore            Field[int]              `json:"fit_score"`
	Notes               Field[string]           `json:"notes"`
	ApplicationDeadline Field[Date]             `json:"application_deadline"`
}

// HasStatus reports whether the update carries an applicable status.
func (u FoundationUpdate) HasStatus() bool {
	return u.Status.Set && u.Status.Valid && u.Status.Value != ""
}

// Empty reports whether the update names no columns at all.
func (u FoundationUpdate) Empty() bool {
	return !u.HasStatus() && !u.FitScore.Set && !u.Notes.Set && !u.ApplicationDeadline.Set
}

type StatusCount struct {
	Status FoundationStatus `json:"status"`
	Count  int64            `json:"count"`
}

// FoundationStats is the aggregate dashboard snapshot.
type FoundationStats struct {
	Total             int64         `json:"total"`
	HighFit           int64         `json:"highFit"`
	AvgFitScore       *float64      `json:"avgFitScore"`
	UpcomingDeadlines int64         `json:"upcomingDeadlines"`
	ByStatus          []StatusCount `json:"byStatus"`
}
