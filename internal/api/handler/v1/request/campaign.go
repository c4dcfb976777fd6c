package request

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var timeOfDayExp = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d:[0-5]\d$`)

type CreateCampaignRequest struct {
	Name           string    `json:"name"`
	Venue          string    `json:"venue"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	InvitationType string    `json:"invitation_type"`
}

func (req *CreateCampaignRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Venue, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required, validation.Min(req.StartDate)),
		validation.Field(&req.InvitationType, validation.Required,
			validation.In("business_opportunity", "job_opportunity")),
	)
}

type UpdateCampaignRequest struct {
	Name           string    `json:"name"`
	Venue          string    `json:"venue"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	InvitationType string    `json:"invitation_type"`
}

func (req *UpdateCampaignRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Venue, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required, validation.Min(req.StartDate)),
		validation.Field(&req.InvitationType, validation.Required,
			validation.In("business_opportunity", "job_opportunity")),
	)
}

type TransitionCampaignRequest struct {
	Status string `json:"status"`
}

func (req *TransitionCampaignRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In("active", "paused", "completed")),
	)
}

type CreateSlotRequest struct {
	DayOfWeek             *int   `json:"day_of_week"`
	StartTime             string `json:"start_time"`
	EndTime               string `json:"end_time"`
	CheckinWindowMinutes  int    `json:"checkin_window_minutes"`
	CheckoutWindowMinutes int    `json:"checkout_window_minutes"`
}

func (req *CreateSlotRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DayOfWeek, validation.NotNil, validation.Min(0), validation.Max(6)),
		validation.Field(&req.StartTime, validation.Required, validation.Match(timeOfDayExp)),
		validation.Field(&req.EndTime, validation.Required, validation.Match(timeOfDayExp)),
		validation.Field(&req.CheckinWindowMinutes, validation.Min(0), validation.Max(240)),
		validation.Field(&req.CheckoutWindowMinutes, validation.Min(0), validation.Max(240)),
	)
}

type UpdateSlotRequest struct {
	DayOfWeek             *int   `json:"day_of_week"`
	StartTime             string `json:"start_time"`
	EndTime               string `json:"end_time"`
	CheckinWindowMinutes  int    `json:"checkin_window_minutes"`
	CheckoutWindowMinutes int    `json:"checkout_window_minutes"`
	IsActive              *bool  `json:"is_active"`
}

func (req *UpdateSlotRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DayOfWeek, validation.NotNil, validation.Min(0), validation.Max(6)),
		validation.Field(&req.StartTime, validation.Required, validation.Match(timeOfDayExp)),
		validation.Field(&req.EndTime, validation.Required, validation.Match(timeOfDayExp)),
		validation.Field(&req.CheckinWindowMinutes, validation.Min(0), validation.Max(240)),
		validation.Field(&req.CheckoutWindowMinutes, validation.Min(0), validation.Max(240)),
		validation.Field(&req.IsActive, validation.NotNil),
	)
}
