package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Agent{},
		&Tier{},
		&Campaign{},
		&Slot{},
		&Invitation{},
		&PinCode{},
		&Attendance{},
		&Reward{},
	)
	if err != nil {
		return err
	}

	// Constraints AutoMigrate cannot express. The partial unique indexes turn
	// the registration duplicate scans into storage-level guarantees, and the
	// attendance index enforces at-most-one attendance per invitation.
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_invitations_invitee_nric
			ON invitations (invitee_nric) WHERE invitee_nric IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_invitations_invitee_phone
			ON invitations (invitee_phone) WHERE invitee_phone IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_attendance_invitation_id
			ON attendance (invitation_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_pin_codes_slot_code
			ON pin_codes (slot_id, code)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
