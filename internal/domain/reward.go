package domain

import "time"

type RewardStatus string

const (
	RewardPending   RewardStatus = "pending"
	RewardConfirmed RewardStatus = "confirmed"
	RewardPaid      RewardStatus = "paid"
)

// Reward is owed to an agent for a full attendance, at the agent's tier rate
// captured at accrual time. Rows are written by an external accrual process;
// this service only reads them.
type Reward struct {
	ID           uint         `json:"id"`
	AgentID      uint         `json:"agent_id"`
	AttendanceID uint         `json:"attendance_id"`
	Amount       float64      `json:"amount"`
	CapacityType CapacityType `json:"capacity_type"`
	Status       RewardStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// RewardSummary is the agent-facing reward view. When no reward rows have
// been materialised yet, PendingEstimate is derived from the agent's
// completed invitations at the current tier rate.
type RewardSummary struct {
	Rewards         []Reward `json:"rewards"`
	TotalConfirmed  float64  `json:"total_confirmed"`
	TotalPaid       float64  `json:"total_paid"`
	PendingEstimate float64  `json:"pending_estimate"`
	CompletedCount  int64    `json:"completed_count"`
}
