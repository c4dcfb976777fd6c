package domain

import "time"

// Slot is a recurring weekly time window within a campaign at which
// attendance is taken. Times are stored as HH:MM:SS strings.
type Slot struct {
	ID                     uint      `json:"id"`
	CampaignID             uint      `json:"campaign_id"`
	Campaign               *Campaign `json:"campaign,omitempty"`
	DayOfWeek              int       `json:"day_of_week"` // 0-6, Sunday-Saturday
	StartTime              string    `json:"start_time"`
	EndTime                string    `json:"end_time"`
	CheckinWindowMinutes   int       `json:"checkin_window_minutes"`
	CheckoutWindowMinutes  int       `json:"checkout_window_minutes"`
	IsActive               bool      `json:"is_active"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
