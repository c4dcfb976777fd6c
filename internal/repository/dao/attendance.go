package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyCheckedIn   = errors.New("already checked in")
	ErrAlreadyCheckedOut  = errors.New("already checked out")
	ErrPinAlreadyClaimed  = errors.New("pin code already claimed by another nric")
	ErrNotCheckedIn       = errors.New("invitation has not checked in")
)

type Attendance struct {
	ID uint `gorm:"primaryKey"`

	InvitationID uint       `gorm:"not null"`
	Invitation   Invitation `gorm:"foreignKey:InvitationID"`
	PinCodeID    uint       `gorm:"not null"`
	PinCode      PinCode    `gorm:"foreignKey:PinCodeID"`

	CheckinTime      time.Time `gorm:"not null"`
	CheckoutTime     *time.Time
	IsFullAttendance bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Attendance) TableName() string {
	return "attendance"
}

type AttendanceDAO struct {
	db *gorm.DB
}

func NewAttendanceDAO(db *gorm.DB) *AttendanceDAO {
	return &AttendanceDAO{
		db: db,
	}
}

func (d *AttendanceDAO) FindByInvitationID(ctx context.Context, invitationID uint) (Attendance, error) {
	var attendance Attendance

	result := d.db.WithContext(ctx).First(&attendance, "invitation_id = ?", invitationID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Attendance{}, ErrAttendanceNotFound
		}

		return Attendance{}, result.Error
	}

	return attendance, nil
}

func (d *AttendanceDAO) FindBySlotID(ctx context.Context, slotID uint) ([]Attendance, error) {
	var records []Attendance

	result := d.db.WithContext(ctx).
		Preload("Invitation").
		Joins("JOIN invitations ON invitations.id = attendance.invitation_id").
		Where("invitations.slot_id = ?", slotID).
		Order("attendance.checkin_time").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

// CompleteCheckIn performs the mutating half of the check-in protocol as one
// transaction: claim the PIN, insert the attendance row, move the invitation
// to attended. Every write carries its precondition in the WHERE clause, so
// a concurrent check-in that won the race surfaces here as a conflict and
// the losing transaction rolls back whole.
func (d *AttendanceDAO) CompleteCheckIn(ctx context.Context, pinCodeID, invitationID uint, nric string, now time.Time) (Attendance, error) {
	var attendance Attendance

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Claim the PIN. A no-op update is fine when the PIN is already
		// linked to this same NRIC.
		result := tx.Model(&PinCode{}).
			Where("id = ? AND (is_used = false OR linked_nric = ?)", pinCodeID, nric).
			Updates(map[string]interface{}{
				"is_used":     true,
				"linked_nric": nric,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPinAlreadyClaimed
		}

		attendance = Attendance{
			InvitationID:     invitationID,
			PinCodeID:        pinCodeID,
			CheckinTime:      now,
			IsFullAttendance: false,
		}
		if err := tx.Create(&attendance).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrAlreadyCheckedIn
			}

			return err
		}

		result = tx.Model(&Invitation{}).
			Where("id = ? AND status = ?", invitationID, InvitationRegistered).
			Update("status", InvitationAttended)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyCheckedIn
		}

		return nil
	})
	if err != nil {
		return Attendance{}, err
	}

	return attendance, nil
}

// CompleteCheckOut stamps the checkout time and moves the invitation to
// completed, atomically. Zero rows affected on either write means another
// request got there first.
func (d *AttendanceDAO) CompleteCheckOut(ctx context.Context, invitationID uint, now time.Time) (Attendance, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Attendance{}).
			Where("invitation_id = ? AND checkout_time IS NULL", invitationID).
			Updates(map[string]interface{}{
				"checkout_time":      now,
				"is_full_attendance": true,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyCheckedOut
		}

		result = tx.Model(&Invitation{}).
			Where("id = ? AND status = ?", invitationID, InvitationAttended).
			Update("status", InvitationCompleted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyCheckedOut
		}

		return nil
	})
	if err != nil {
		return Attendance{}, err
	}

	return d.FindByInvitationID(ctx, invitationID)
}
