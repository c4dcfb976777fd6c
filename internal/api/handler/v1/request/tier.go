package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTierRequest struct {
	Name                   string  `json:"name"`
	RoleType               string  `json:"role_type"`
	RewardAmount           float64 `json:"reward_amount"`
	InvitationLimitPerSlot int     `json:"invitation_limit_per_slot"`
}

func (req *CreateTierRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.RoleType, validation.Required,
			validation.In("agent", "business_partner")),
		validation.Field(&req.RewardAmount, validation.Min(0.0)),
		validation.Field(&req.InvitationLimitPerSlot, validation.Required, validation.Min(1)),
	)
}

type UpdateTierRequest struct {
	Name                   string  `json:"name"`
	RoleType               string  `json:"role_type"`
	RewardAmount           float64 `json:"reward_amount"`
	InvitationLimitPerSlot int     `json:"invitation_limit_per_slot"`
}

func (req *UpdateTierRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.RoleType, validation.Required,
			validation.In("agent", "business_partner")),
		validation.Field(&req.RewardAmount, validation.Min(0.0)),
		validation.Field(&req.InvitationLimitPerSlot, validation.Required, validation.Min(1)),
	)
}
