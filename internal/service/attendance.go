package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository"
)

var (
	// Check-in failures.
	ErrInvalidPin        = errors.New("invalid pin code for this slot")
	ErrPinAlreadyClaimed = errors.New("pin code already claimed by another attendee")
	ErrNotRegistered     = errors.New("no registered invitation found for this nric and slot")
	ErrAlreadyCheckedIn  = errors.New("already checked in for this slot")

	// Check-out failures.
	ErrPinNotClaimedBySubmitter = errors.New("pin code was not claimed by this nric")
	ErrNotCheckedIn             = errors.New("no checked-in invitation found for this nric and slot")
	ErrNoAttendanceRecord       = errors.New("attendance record missing for invitation")
	ErrAlreadyCheckedOut        = errors.New("already checked out for this slot")
)

type AttendanceRepository interface {
	GetByInvitationID(ctx context.Context, invitationID uint) (domain.Attendance, error)
	GetBySlotID(ctx context.Context, slotID uint) ([]domain.Attendance, error)
	CompleteCheckIn(ctx context.Context, pinCodeID, invitationID uint, nric string, now time.Time) (domain.Attendance, error)
	CompleteCheckOut(ctx context.Context, invitationID uint, now time.Time) (domain.Attendance, error)
}

type GatePinCodeRepository interface {
	GetBySlotAndCode(ctx context.Context, slotID uint, code string) (domain.PinCode, error)
}

type GateInvitationRepository interface {
	GetBySlotNRICAndStatus(ctx context.Context, slotID uint, nric string, status domain.InvitationStatus) (domain.Invitation, error)
}

// EventPublisher emits completed-invitation events for the external
// reward-accrual process. Publishing is best effort.
type EventPublisher interface {
	PublishInvitationCompleted(ctx context.Context, event domain.InvitationCompletedEvent) error
}

// AttendanceService is the check-in/check-out gate. The PIN is the physical
// artifact displayed at the venue and the NRIC is the identity credential;
// the first successful check-in binds the two for the rest of the slot's
// life. Slot time windows are stored but deliberately not enforced here.
type AttendanceService struct {
	repo           AttendanceRepository
	pinRepo        GatePinCodeRepository
	invitationRepo GateInvitationRepository
	publisher      EventPublisher
	now            func() time.Time
}

func NewAttendanceService(repo AttendanceRepository, pinRepo GatePinCodeRepository, invitationRepo GateInvitationRepository, publisher EventPublisher) *AttendanceService {
	return &AttendanceService{
		repo:           repo,
		pinRepo:        pinRepo,
		invitationRepo: invitationRepo,
		publisher:      publisher,
		now:            time.Now,
	}
}

// CheckIn validates (PIN, NRIC) for the slot and moves the invitation from
// registered to attended. The validation reads are advisory; the final
// transaction re-checks every precondition with conditional writes, so a
// concurrent request that won the race surfaces as a conflict, never as a
// double check-in or a stolen PIN.
func (s *AttendanceService) CheckIn(ctx context.Context, slotID uint, pinCodeValue, nric string) (domain.Attendance, error) {
	pin, err := s.pinRepo.GetBySlotAndCode(ctx, slotID, pinCodeValue)
	if err != nil {
		if errors.Is(err, repository.ErrPinCodeNotFound) {
			return domain.Attendance{}, ErrInvalidPin
		}

		return domain.Attendance{}, fmt.Errorf("s.pinRepo.GetBySlotAndCode -> %w", err)
	}

	if !pin.CanBePresentedBy(nric) {
		return domain.Attendance{}, ErrPinAlreadyClaimed
	}

	invitation, err := s.invitationRepo.GetBySlotNRICAndStatus(ctx, slotID, nric, domain.InvitationRegistered)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) {
			return domain.Attendance{}, ErrNotRegistered
		}

		return domain.Attendance{}, fmt.Errorf("s.invitationRepo.GetBySlotNRICAndStatus -> %w", err)
	}

	if _, err = s.repo.GetByInvitationID(ctx, invitation.ID); err == nil {
		return domain.Attendance{}, ErrAlreadyCheckedIn
	} else if !errors.Is(err, repository.ErrAttendanceNotFound) {
		return domain.Attendance{}, fmt.Errorf("s.repo.GetByInvitationID -> %w", err)
	}

	attendance, err := s.repo.CompleteCheckIn(ctx, pin.ID, invitation.ID, nric, s.now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPinAlreadyClaimed):
			return domain.Attendance{}, ErrPinAlreadyClaimed
		case errors.Is(err, repository.ErrAlreadyCheckedIn):
			return domain.Attendance{}, ErrAlreadyCheckedIn
		}

		return domain.Attendance{}, fmt.Errorf("s.repo.CompleteCheckIn -> %w", err)
	}

	zap.L().Info("checked in",
		zap.Uint("slot_id", slotID),
		zap.Uint("invitation_id", invitation.ID),
		zap.Uint("pin_code_id", pin.ID))

	return attendance, nil
}

// CheckOut is stricter than check-in: the PIN must already be claimed by
// the submitting NRIC, and the invitation must be in attended. Completing
// the invitation emits the reward-accrual event.
func (s *AttendanceService) CheckOut(ctx context.Context, slotID uint, pinCodeValue, nric string) (domain.Attendance, error) {
	pin, err := s.pinRepo.GetBySlotAndCode(ctx, slotID, pinCodeValue)
	if err != nil {
		if errors.Is(err, repository.ErrPinCodeNotFound) {
			return domain.Attendance{}, ErrInvalidPin
		}

		return domain.Attendance{}, fmt.Errorf("s.pinRepo.GetBySlotAndCode -> %w", err)
	}

	if !pin.IsClaimedBy(nric) {
		return domain.Attendance{}, ErrPinNotClaimedBySubmitter
	}

	invitation, err := s.invitationRepo.GetBySlotNRICAndStatus(ctx, slotID, nric, domain.InvitationAttended)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) {
			return domain.Attendance{}, ErrNotCheckedIn
		}

		return domain.Attendance{}, fmt.Errorf("s.invitationRepo.GetBySlotNRICAndStatus -> %w", err)
	}

	existing, err := s.repo.GetByInvitationID(ctx, invitation.ID)
	if err != nil {
		// Unreachable given the status check above, kept as a guard.
		if errors.Is(err, repository.ErrAttendanceNotFound) {
			return domain.Attendance{}, ErrNoAttendanceRecord
		}

		return domain.Attendance{}, fmt.Errorf("s.repo.GetByInvitationID -> %w", err)
	}
	if existing.CheckoutTime != nil {
		return domain.Attendance{}, ErrAlreadyCheckedOut
	}

	attendance, err := s.repo.CompleteCheckOut(ctx, invitation.ID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyCheckedOut) {
			return domain.Attendance{}, ErrAlreadyCheckedOut
		}

		return domain.Attendance{}, fmt.Errorf("s.repo.CompleteCheckOut -> %w", err)
	}

	zap.L().Info("checked out",
		zap.Uint("slot_id", slotID),
		zap.Uint("invitation_id", invitation.ID))

	if s.publisher != nil {
		event := domain.InvitationCompletedEvent{
			InvitationID: invitation.ID,
			AgentID:      invitation.AgentID,
			SlotID:       slotID,
			AttendanceID: attendance.ID,
			CompletedAt:  s.now(),
		}
		if err := s.publisher.PublishInvitationCompleted(ctx, event); err != nil {
			// Accrual is external and eventually consistent; the check-out
			// itself has already committed.
			zap.L().Warn("failed to publish invitation.completed",
				zap.Uint("invitation_id", invitation.ID),
				zap.Error(err))
		}
	}

	return attendance, nil
}

func (s *AttendanceService) ListForSlot(ctx context.Context, slotID uint) ([]domain.Attendance, error) {
	records, err := s.repo.GetBySlotID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetBySlotID -> %w", err)
	}

	return records, nil
}
