package domain

import "time"

type CapacityType string

const (
	CapacityAgent           CapacityType = "agent"
	CapacityBusinessPartner CapacityType = "business_partner"
)

type InvitationStatus string

const (
	InvitationPending    InvitationStatus = "pending"
	InvitationRegistered InvitationStatus = "registered"
	InvitationAttended   InvitationStatus = "attended"
	InvitationCompleted  InvitationStatus = "completed"
	InvitationExpired    InvitationStatus = "expired"
)

// Invitation is a single-use right, held by an agent, to bring one invitee
// to a slot. The unique token is minted once at creation and never changes.
type Invitation struct {
	ID           uint             `json:"id"`
	AgentID      uint             `json:"agent_id"`
	SlotID       uint             `json:"slot_id"`
	Slot         *Slot            `json:"slot,omitempty"`
	CapacityType CapacityType     `json:"capacity_type"`
	UniqueToken  string           `json:"unique_token"`
	Status       InvitationStatus `json:"status"`

	InviteeName       string `json:"invitee_name,omitempty"`
	InviteeNRIC       string `json:"invitee_nric,omitempty"`
	InviteePhone      string `json:"invitee_phone,omitempty"`
	InviteeEmail      string `json:"invitee_email,omitempty"`
	InviteeOccupation string `json:"invitee_occupation,omitempty"`

	RegisteredAt *time.Time `json:"registered_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CanTransitionTo reports whether the invitation may move to the target
// status. The lifecycle only moves forward: pending -> registered ->
// attended -> completed. Expired is absorbing and reachable from pending
// or registered only.
func (i *Invitation) CanTransitionTo(target InvitationStatus) bool {
	switch i.Status {
	case InvitationPending:
		return target == InvitationRegistered || target == InvitationExpired
	case InvitationRegistered:
		return target == InvitationAttended || target == InvitationExpired
	case InvitationAttended:
		return target == InvitationCompleted
	default:
		return false
	}
}
