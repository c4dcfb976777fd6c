package domain

import "time"

type AgentStatus string

const (
	AgentActive   AgentStatus = "active"
	AgentInactive AgentStatus = "inactive"
)

// Agent is the recruiter profile linked 1:1 to an authenticated user.
// Many agents may share the same tier.
type Agent struct {
	ID        uint        `json:"id"`
	UserID    uint        `json:"user_id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	NRIC      string      `json:"nric"`
	AgentCode string      `json:"agent_code"`
	UnitName  string      `json:"unit_name"`
	TierID    uint        `json:"tier_id"`
	Tier      *Tier       `json:"tier,omitempty"`
	Status    AgentStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
