package domain

import "time"

// InvitationCompletedEvent is emitted when an invitation reaches completed,
// for the external reward-accrual process to consume.
type InvitationCompletedEvent struct {
	InvitationID uint      `json:"invitation_id"`
	AgentID      uint      `json:"agent_id"`
	SlotID       uint      `json:"slot_id"`
	AttendanceID uint      `json:"attendance_id"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Attendance records a single invitee's presence at a slot. At most one row
// exists per invitation; checkin_time is set once, checkout_time at most once.
type Attendance struct {
	ID               uint        `json:"id"`
	InvitationID     uint        `json:"invitation_id"`
	Invitation       *Invitation `json:"invitation,omitempty"`
	PinCodeID        uint        `json:"pin_code_id"`
	CheckinTime      time.Time   `json:"checkin_time"`
	CheckoutTime     *time.Time  `json:"checkout_time,omitempty"`
	IsFullAttendance bool        `json:"is_full_attendance"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
