package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateInvitationsRequest struct {
	SlotID       uint   `json:"slot_id"`
	CapacityType string `json:"capacity_type"`
	Count        int    `json:"count"`
}

func (req *CreateInvitationsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SlotID, validation.Required),
		validation.Field(&req.CapacityType, validation.Required,
			validation.In("agent", "business_partner")),
		validation.Field(&req.Count, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

type RegisterInvitationRequest struct {
	Name       string `json:"name"`
	NRIC       string `json:"nric"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Occupation string `json:"occupation"`
}

func (req *RegisterInvitationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.NRIC, validation.Required, validation.Match(nricExp)),
		validation.Field(&req.Phone, validation.Required, validation.Match(phoneExp)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Occupation, validation.Length(0, 100)),
	)
}
