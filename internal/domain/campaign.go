package domain

import "time"

type InvitationType string

const (
	BusinessOpportunity InvitationType = "business_opportunity"
	JobOpportunity      InvitationType = "job_opportunity"
)

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

type Campaign struct {
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	Venue          string         `json:"venue"`
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	InvitationType InvitationType `json:"invitation_type"`
	Status         CampaignStatus `json:"status"`
	Slots          []Slot         `json:"slots,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// SlotReport aggregates one slot's invitation and attendance numbers for
// the admin campaign report.
type SlotReport struct {
	SlotID         uint  `json:"slot_id"`
	Registered     int64 `json:"registered"`
	Attended       int64 `json:"attended"`
	Completed      int64 `json:"completed"`
	FullAttendance int64 `json:"full_attendance"`
	PinsTotal      int64 `json:"pins_total"`
	PinsUsed       int64 `json:"pins_used"`
}

// CanTransitionTo reports whether the campaign may move to the target status.
// Legal path: draft -> active -> {paused <-> active} -> completed.
func (c *Campaign) CanTransitionTo(target CampaignStatus) bool {
	switch c.Status {
	case CampaignDraft:
		return target == CampaignActive
	case CampaignActive:
		return target == CampaignPaused || target == CampaignCompleted
	case CampaignPaused:
		return target == CampaignActive || target == CampaignCompleted
	default:
		return false
	}
}
