package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository"
)

type fakeGateStore struct {
	pins        map[uint]*domain.PinCode
	invitations map[uint]*domain.Invitation
	attendance  map[uint]*domain.Attendance // keyed by invitation ID
	nextID      uint
}

func newFakeGateStore() *fakeGateStore {
	return &fakeGateStore{
		pins:        make(map[uint]*domain.PinCode),
		invitations: make(map[uint]*domain.Invitation),
		attendance:  make(map[uint]*domain.Attendance),
		nextID:      1,
	}
}

func (f *fakeGateStore) addPin(slotID uint, code string) *domain.PinCode {
	pin := &domain.PinCode{ID: f.nextID, SlotID: slotID, Code: code}
	f.pins[pin.ID] = pin
	f.nextID++

	return pin
}

func (f *fakeGateStore) addInvitation(slotID uint, nric string, status domain.InvitationStatus) *domain.Invitation {
	inv := &domain.Invitation{
		ID:          f.nextID,
		AgentID:     42,
		SlotID:      slotID,
		InviteeNRIC: nric,
		Status:      status,
	}
	f.invitations[inv.ID] = inv
	f.nextID++

	return inv
}

func (f *fakeGateStore) GetBySlotAndCode(_ context.Context, slotID uint, code string) (domain.PinCode, error) {
	for _, pin := range f.pins {
		if pin.SlotID == slotID && pin.Code == code {
			return *pin, nil
		}
	}

	return domain.PinCode{}, repository.ErrPinCodeNotFound
}

func (f *fakeGateStore) GetBySlotNRICAndStatus(_ context.Context, slotID uint, nric string, status domain.InvitationStatus) (domain.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.SlotID == slotID && inv.InviteeNRIC == nric && inv.Status == status {
			return *inv, nil
		}
	}

	return domain.Invitation{}, repository.ErrInvitationNotFound
}

func (f *fakeGateStore) GetByInvitationID(_ context.Context, invitationID uint) (domain.Attendance, error) {
	att, ok := f.attendance[invitationID]
	if !ok {
		return domain.Attendance{}, repository.ErrAttendanceNotFound
	}

	return *att, nil
}

func (f *fakeGateStore) GetBySlotID(_ context.Context, slotID uint) ([]domain.Attendance, error) {
	var records []domain.Attendance
	for _, att := range f.attendance {
		inv := f.invitations[att.InvitationID]
		if inv != nil && inv.SlotID == slotID {
			records = append(records, *att)
		}
	}

	return records, nil
}

// CompleteCheckIn mirrors the conditional writes of the real store: the PIN
// claim, the attendance insert and the status move all re-verify their
// preconditions and fail without partial effects.
func (f *fakeGateStore) CompleteCheckIn(_ context.Context, pinCodeID, invitationID uint, nric string, now time.Time) (domain.Attendance, error) {
	pin := f.pins[pinCodeID]
	if pin == nil || (pin.IsUsed && pin.LinkedNRIC != nric) {
		return domain.Attendance{}, repository.ErrPinAlreadyClaimed
	}

	if _, exists := f.attendance[invitationID]; exists {
		return domain.Attendance{}, repository.ErrAlreadyCheckedIn
	}

	inv := f.invitations[invitationID]
	if inv == nil || inv.Status != domain.InvitationRegistered {
		return domain.Attendance{}, repository.ErrAlreadyCheckedIn
	}

	pin.IsUsed = true
	pin.LinkedNRIC = nric
	inv.Status = domain.InvitationAttended

	att := &domain.Attendance{
		ID:           f.nextID,
		InvitationID: invitationID,
		PinCodeID:    pinCodeID,
		CheckinTime:  now,
	}
	f.nextID++
	f.attendance[invitationID] = att

	return *att, nil
}

func (f *fakeGateStore) CompleteCheckOut(_ context.Context, invitationID uint, now time.Time) (domain.Attendance, error) {
	att := f.attendance[invitationID]
	if att == nil || att.CheckoutTime != nil {
		return domain.Attendance{}, repository.ErrAlreadyCheckedOut
	}

	inv := f.invitations[invitationID]
	if inv == nil || inv.Status != domain.InvitationAttended {
		return domain.Attendance{}, repository.ErrAlreadyCheckedOut
	}

	checkout := now
	att.CheckoutTime = &checkout
	att.IsFullAttendance = true
	inv.Status = domain.InvitationCompleted

	return *att, nil
}

type fakePublisher struct {
	events []domain.InvitationCompletedEvent
	err    error
}

func (p *fakePublisher) PublishInvitationCompleted(_ context.Context, event domain.InvitationCompletedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)

	return nil
}

func newGateService(store *fakeGateStore, publisher EventPublisher) *AttendanceService {
	svc := NewAttendanceService(store, store, store, publisher)
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 19, 0, 0, 0, time.UTC) }

	return svc
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path binds the pin and moves the invitation to attended", func(t *testing.T) {
		store := newFakeGateStore()
		pin := store.addPin(1, "123456")
		inv := store.addInvitation(1, "S1234567A", domain.InvitationRegistered)
		svc := newGateService(store, nil)

		att, err := svc.CheckIn(ctx, 1, "123456", "S1234567A")

		require.NoError(t, err)
		assert.Equal(t, inv.ID, att.InvitationID)
		assert.Equal(t, pin.ID, att.PinCodeID)
		assert.True(t, store.pins[pin.ID].IsUsed)
		assert.Equal(t, "S1234567A", store.pins[pin.ID].LinkedNRIC)
		assert.Equal(t, domain.InvitationAttended, store.invitations[inv.ID].Status)
	})

	t.Run("unknown pin", func(t *testing.T) {
		store := newFakeGateStore()
		store.addInvitation(1, "S1234567A", domain.InvitationRegistered)
		svc := newGateService(store, nil)

		_, err := svc.CheckIn(ctx, 1, "999999", "S1234567A")

		assert.ErrorIs(t, err, ErrInvalidPin)
	})

	t.Run("pin from another slot is invalid", func(t *testing.T) {
		store := newFakeGateStore()
		store.addPin(2, "123456")
		store.addInvitation(1, "S1234567A", domain.InvitationRegistered)
		svc := newGateService(store, nil)

		_, err := svc.CheckIn(ctx, 1, "123456", "S1234567A")

		assert.ErrorIs(t, err, ErrInvalidPin)
	})

	t.Run("pin claimed by another nric is rejected and nothing mutates", func(t *testing.T) {
		store := newFakeGateStore()
		pin := store.addPin(1, "123456")
		pin.IsUsed = true
		pin.LinkedNRIC = "S7654321B"
		inv := store.addInvitation(1, "S1234567A", domain.InvitationRegistered)
		svc := newGateService(store, nil)

		_, err := svc.CheckIn(ctx, 1, "123456", "S1234567A")

		assert.ErrorIs(t, err, ErrPinAlreadyClaimed)
		assert.Equal(t, domain.InvitationRegistered, store.invitations[inv.ID].Status)
		assert.Empty(t, store.attendance)
	})

	t.Run("no registered invitation for the nric", func(t *testing.T) {
		store := newFakeGateStore()
		store.addPin(1, "123456")
		store.addInvitation(1, "S1234567A", domain.InvitationPending)
		svc := newGateService(store, nil)

		_, err := svc.CheckIn(ctx, 1, "123456", "S1234567A")

		assert.ErrorIs(t, err, ErrNotRegistered)
	})

	t.Run("second check-in is rejected", func(t *testing.T) {
		store := newFakeGateStore()
		store.addPin(1, "123456")
		store.addInvitation(1, "S1234567A", domain.InvitationRegistered)
		svc := newGateService(store, nil)

		_, err := svc.CheckIn(ctx, 1, "123456", "S1234567A")
		require.NoError(t, err)

		_, err = svc.CheckIn(ctx, 1, "123456", "S1234567A")
		assert.ErrorIs(t, err, ErrNotRegistered)
		assert.Len(t, store.attendance, 1)
	})

	t.Run("concurrent claim detected at the write is a conflict", func(t *testing.T) {
		store := newFakeGateStore()
		pin := store.addPin(1, "123456")
		store.addInvitation(1, "S1234567A", domain.InvitationRegistered)
		svc := newGateService(store, nil)

		// Another invitee wins the pin between the validation read and
		// the write.
		svc.pinRepo = staleGatePins{store: store}
		pin.IsUsed = true
		pin.LinkedNRIC = "S7654321B"

		_, err := svc.CheckIn(ctx, 1, "123456", "S1234567A")

		assert.ErrorIs(t, err, ErrPinAlreadyClaimed)
		assert.Empty(t, store.attendance)
	})
}

// staleGatePins serves pin reads as if the pin were still unclaimed, to
// simulate a race against another check-in.
type staleGatePins struct {
	store *fakeGateStore
}

func (s staleGatePins) GetBySlotAndCode(ctx context.Context, slotID uint, code string) (domain.PinCode, error) {
	pin, err := s.store.GetBySlotAndCode(ctx, slotID, code)
	if err != nil {
		return domain.PinCode{}, err
	}
	pin.IsUsed = false
	pin.LinkedNRIC = ""

	return pin, nil
}

func TestAttendanceService_CheckOut(t *testing.T) {
	ctx := context.Background()

	checkIn := func(t *testing.T, store *fakeGateStore, svc *AttendanceService) {
		t.Helper()
		_, err := svc.CheckIn(ctx, 1, "123456", "S1234567A")
		require.NoError(t, err)
	}

	t.Run("happy path completes the invitation and publishes the event", func(t *testing.T) {
		store := newFakeGateStore()
		store.addPin(1, "123456")
		inv := store.addInvitation(1, "S1234567A", domain.InvitationRegistered)
		publisher := &fakePublisher{}
		svc := newGateService(store, publisher)
		checkIn(t, store, svc)

		att, err := svc.CheckOut(ctx, 1, "123456", "S1234567A")

		require.NoError(t, err)
		require.NotNil(t, att.CheckoutTime)
		assert.True(t, att.IsFullAttendance)
		assert.Equal(t, domain.InvitationCompleted, store.invitations[inv.ID].Status)
		require.Len(t, publisher.events, 1)
		assert.Equal(t, inv.ID, publisher.events[0].InvitationID)
		assert.Equal(t, inv.AgentID, publisher.events[0].AgentID)
	})

	t.Run("publish failure does not fail the check-out", func(t *testing.T) {
		store := newFakeGateStore()
		store.addPin(1, "123456")
		inv := store.addInvitation(1, "S1234567A", domain.InvitationRegistered)
		publisher := &fakePublisher{err: assert.AnError}
		svc := newGateService(store, publisher)
		checkIn(t, store, svc)

		_, err := svc.CheckOut(ctx, 1, "123456", "S1234567A")

		require.NoError(t, err)
		assert.Equal(t, domain.InvitationCompleted, store.invitations[inv.ID].Status)
	})

	t.Run("checkout before checkin is rejected without mutation", func(t *testing.T) {
		store := newFakeGateStore()
		store.addPin(1, "123456")
		inv := store.addInvitation(1, "S1234567A", domain.InvitationRegistered)
		svc := newGateService(store, nil)

		_, err := svc.CheckOut(ctx, 1, "123456", "S1234567A")

		assert.ErrorIs(t, err, ErrPinNotClaimedBySubmitter)
		assert.Equal(t, domain.InvitationRegistered, store.invitations[inv.ID].Status)
		assert.Empty(t, store.attendance)
	})

	t.Run("checkout with a pin claimed by someone else", func(t *testing.T) {
		store := newFakeGateStore()
		store.addPin(1, "123456")
		store.addPin(1, "654321")
		store.addInvitation(1, "S1234567A", domain.InvitationRegistered)
		store.addInvitation(1, "S7654321B", domain.InvitationRegistered)
		svc := newGateService(store, nil)
		checkIn(t, store, svc)

		_, err := svc.CheckOut(ctx, 1, "123456", "S7654321B")

		assert.ErrorIs(t, err, ErrPinNotClaimedBySubmitter)
	})

	t.Run("double checkout is rejected", func(t *testing.T) {
		store := newFakeGateStore()
		store.addPin(1, "123456")
		store.addInvitation(1, "S1234567A", domain.InvitationRegistered)
		svc := newGateService(store, nil)
		checkIn(t, store, svc)

		_, err := svc.CheckOut(ctx, 1, "123456", "S1234567A")
		require.NoError(t, err)

		_, err = svc.CheckOut(ctx, 1, "123456", "S1234567A")
		assert.ErrorIs(t, err, ErrNotCheckedIn)
	})

	t.Run("unknown pin", func(t *testing.T) {
		store := newFakeGateStore()
		svc := newGateService(store, nil)

		_, err := svc.CheckOut(ctx, 1, "000000", "S1234567A")

		assert.ErrorIs(t, err, ErrInvalidPin)
	})
}
