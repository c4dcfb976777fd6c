package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository/dao"
)

var (
	ErrAttendanceNotFound = dao.ErrAttendanceNotFound
	ErrAlreadyCheckedIn   = dao.ErrAlreadyCheckedIn
	ErrAlreadyCheckedOut  = dao.ErrAlreadyCheckedOut
	ErrPinAlreadyClaimed  = dao.ErrPinAlreadyClaimed
)

type AttendanceDAO interface {
	FindByInvitationID(ctx context.Context, invitationID uint) (dao.Attendance, error)
	FindBySlotID(ctx context.Context, slotID uint) ([]dao.Attendance, error)
	CompleteCheckIn(ctx context.Context, pinCodeID, invitationID uint, nric string, now time.Time) (dao.Attendance, error)
	CompleteCheckOut(ctx context.Context, invitationID uint, now time.Time) (dao.Attendance, error)
}

type AttendanceRepository struct {
	dao AttendanceDAO
}

func NewAttendanceRepository(dao AttendanceDAO) *AttendanceRepository {
	return &AttendanceRepository{
		dao: dao,
	}
}

func attendanceDaoToDomain(a dao.Attendance) domain.Attendance {
	attendance := domain.Attendance{
		ID:               a.ID,
		InvitationID:     a.InvitationID,
		PinCodeID:        a.PinCodeID,
		CheckinTime:      a.CheckinTime,
		CheckoutTime:     a.CheckoutTime,
		IsFullAttendance: a.IsFullAttendance,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}

	if a.Invitation.ID != 0 {
		invitation := invitationDaoToDomain(a.Invitation)
		attendance.Invitation = &invitation
	}

	return attendance
}

func (r *AttendanceRepository) GetByInvitationID(ctx context.Context, invitationID uint) (domain.Attendance, error) {
	attendance, err := r.dao.FindByInvitationID(ctx, invitationID)
	if err != nil {
		return domain.Attendance{}, err
	}

	return attendanceDaoToDomain(attendance), nil
}

func (r *AttendanceRepository) GetBySlotID(ctx context.Context, slotID uint) ([]domain.Attendance, error) {
	records, err := r.dao.FindBySlotID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySlotID -> %w", err)
	}

	result := make([]domain.Attendance, len(records))
	for i, a := range records {
		result[i] = attendanceDaoToDomain(a)
	}

	return result, nil
}

// CompleteCheckIn executes the mutating steps of check-in (PIN claim,
// attendance insert, status transition) as a single atomic unit.
func (r *AttendanceRepository) CompleteCheckIn(ctx context.Context, pinCodeID, invitationID uint, nric string, now time.Time) (domain.Attendance, error) {
	attendance, err := r.dao.CompleteCheckIn(ctx, pinCodeID, invitationID, nric, now)
	if err != nil {
		return domain.Attendance{}, err
	}

	return attendanceDaoToDomain(attendance), nil
}

// CompleteCheckOut stamps checkout and completes the invitation atomically.
func (r *AttendanceRepository) CompleteCheckOut(ctx context.Context, invitationID uint, now time.Time) (domain.Attendance, error) {
	attendance, err := r.dao.CompleteCheckOut(ctx, invitationID, now)
	if err != nil {
		return domain.Attendance{}, err
	}

	return attendanceDaoToDomain(attendance), nil
}
