package domain

import "time"

type RoleType string

const (
	RoleTypeAgent           RoleType = "agent"
	RoleTypeBusinessPartner RoleType = "business_partner"
)

// Tier is the rate table assigned to agents: the reward owed per completed
// attendance and how many invitations the agent may issue per slot.
type Tier struct {
	ID                     uint      `json:"id"`
	Name                   string    `json:"name"`
	RoleType               RoleType  `json:"role_type"`
	RewardAmount           float64   `json:"reward_amount"`
	InvitationLimitPerSlot int       `json:"invitation_limit_per_slot"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
