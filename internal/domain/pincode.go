package domain

import "time"

// PinCode is a 6-digit code scoped to one slot, displayed at the venue.
// The first successful check-in binds the code to the presenter's NRIC for
// the rest of its life; is_used moves false -> true exactly once.
type PinCode struct {
	ID         uint      `json:"id"`
	SlotID     uint      `json:"slot_id"`
	Code       string    `json:"code"`
	LinkedNRIC string    `json:"linked_nric,omitempty"`
	IsUsed     bool      `json:"is_used"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CanBePresentedBy reports whether the given NRIC may present this code at
// check-in. An unused code is open to anyone; a used code only to the NRIC
// it was claimed by.
func (p *PinCode) CanBePresentedBy(nric string) bool {
	return !p.IsUsed || p.LinkedNRIC == nric
}

// IsClaimedBy reports whether the code has been claimed by the given NRIC.
// Check-out requires this stronger condition.
func (p *PinCode) IsClaimedBy(nric string) bool {
	return p.IsUsed && p.LinkedNRIC == nric
}

// PinInventory summarises a slot's PIN pool.
type PinInventory struct {
	SlotID uint `json:"slot_id"`
	Total  int  `json:"total"`
	Used   int  `json:"used"`
	Unused int  `json:"unused"`
}
