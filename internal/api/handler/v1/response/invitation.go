package response

import (
	"github.com/paul-techiesapp/martin-aia/internal/domain"
)

type InvitationBatchResponse struct {
	Invitations []domain.Invitation `json:"invitations"`
	Remaining   int                 `json:"remaining"`
}

type QuotaResponse struct {
	SlotID    uint `json:"slot_id"`
	Remaining int  `json:"remaining"`
}

// PublicInvitationResponse is what an invitee sees when resolving their
// token: enough to register, nothing about the issuing agent.
type PublicInvitationResponse struct {
	UniqueToken  string                  `json:"unique_token"`
	Status       domain.InvitationStatus `json:"status"`
	CapacityType domain.CapacityType     `json:"capacity_type"`
	Slot         *domain.Slot            `json:"slot,omitempty"`
}

func NewPublicInvitation(invitation domain.Invitation) PublicInvitationResponse {
	return PublicInvitationResponse{
		UniqueToken:  invitation.UniqueToken,
		Status:       invitation.Status,
		CapacityType: invitation.CapacityType,
		Slot:         invitation.Slot,
	}
}

type DeletedPinsResponse struct {
	Deleted int64 `json:"deleted"`
}
