package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqPinCodeValue() string {
	return fmt.Sprintf("%06d", 100000+seq.Add(1)%900000)
}

// gateFixture wires an agent, a slot, an unclaimed PIN and a registered
// invitation, the state both protocols start from.
type gateFixture struct {
	slot       Slot
	pin        PinCode
	invitation Invitation
	nric       string
}

func newGateFixture(t *testing.T) gateFixture {
	t.Helper()

	agent := seedAgent(t, 5)
	slot := seedSlot(t)
	nric := uniqNRIC()

	return gateFixture{
		slot:       slot,
		pin:        seedPinCode(t, slot.ID, uniqPinCodeValue()),
		invitation: seedInvitation(t, agent.ID, slot.ID, InvitationRegistered, nric, uniqPhone()),
		nric:       nric,
	}
}

func TestAttendanceDAO_CompleteCheckIn(t *testing.T) {
	ctx := context.Background()
	d := NewAttendanceDAO(testDB)

	t.Run("claims the pin, records attendance and moves to attended", func(t *testing.T) {
		fx := newGateFixture(t)

		attendance, err := d.CompleteCheckIn(ctx, fx.pin.ID, fx.invitation.ID, fx.nric, time.Now())

		require.NoError(t, err)
		assert.NotZero(t, attendance.ID)
		assert.Equal(t, fx.invitation.ID, attendance.InvitationID)
		assert.Nil(t, attendance.CheckoutTime)

		var pin PinCode
		require.NoError(t, testDB.First(&pin, fx.pin.ID).Error)
		assert.True(t, pin.IsUsed)
		require.NotNil(t, pin.LinkedNRIC)
		assert.Equal(t, fx.nric, *pin.LinkedNRIC)

		var invitation Invitation
		require.NoError(t, testDB.First(&invitation, fx.invitation.ID).Error)
		assert.Equal(t, InvitationAttended, invitation.Status)
	})

	t.Run("pin claimed by another nric is rejected without writes", func(t *testing.T) {
		fx := newGateFixture(t)
		other := uniqNRIC()
		require.NoError(t, testDB.Model(&PinCode{}).
			Where("id = ?", fx.pin.ID).
			Updates(map[string]interface{}{"is_used": true, "linked_nric": other}).Error)

		_, err := d.CompleteCheckIn(ctx, fx.pin.ID, fx.invitation.ID, fx.nric, time.Now())

		assert.ErrorIs(t, err, ErrPinAlreadyClaimed)

		_, err = d.FindByInvitationID(ctx, fx.invitation.ID)
		assert.ErrorIs(t, err, ErrAttendanceNotFound)

		var invitation Invitation
		require.NoError(t, testDB.First(&invitation, fx.invitation.ID).Error)
		assert.Equal(t, InvitationRegistered, invitation.Status)
	})

	t.Run("second check-in for the same invitation is a conflict", func(t *testing.T) {
		fx := newGateFixture(t)

		_, err := d.CompleteCheckIn(ctx, fx.pin.ID, fx.invitation.ID, fx.nric, time.Now())
		require.NoError(t, err)

		_, err = d.CompleteCheckIn(ctx, fx.pin.ID, fx.invitation.ID, fx.nric, time.Now())
		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	})

	t.Run("attendance unique index rolls back the pin claim", func(t *testing.T) {
		fx := newGateFixture(t)
		require.NoError(t, testDB.Create(&Attendance{
			InvitationID: fx.invitation.ID,
			PinCodeID:    seedPinCode(t, fx.slot.ID, uniqPinCodeValue()).ID,
			CheckinTime:  time.Now(),
		}).Error)

		_, err := d.CompleteCheckIn(ctx, fx.pin.ID, fx.invitation.ID, fx.nric, time.Now())

		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

		// The whole transaction rolled back: the presented PIN stays unclaimed.
		var pin PinCode
		require.NoError(t, testDB.First(&pin, fx.pin.ID).Error)
		assert.False(t, pin.IsUsed)
	})

	t.Run("status conditional write rejects a non-registered invitation", func(t *testing.T) {
		fx := newGateFixture(t)
		require.NoError(t, testDB.Model(&Invitation{}).
			Where("id = ?", fx.invitation.ID).
			Update("status", InvitationExpired).Error)

		_, err := d.CompleteCheckIn(ctx, fx.pin.ID, fx.invitation.ID, fx.nric, time.Now())

		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

		_, err = d.FindByInvitationID(ctx, fx.invitation.ID)
		assert.ErrorIs(t, err, ErrAttendanceNotFound)

		var pin PinCode
		require.NoError(t, testDB.First(&pin, fx.pin.ID).Error)
		assert.False(t, pin.IsUsed)
	})
}

func TestAttendanceDAO_CompleteCheckOut(t *testing.T) {
	ctx := context.Background()
	d := NewAttendanceDAO(testDB)

	t.Run("stamps checkout and completes the invitation", func(t *testing.T) {
		fx := newGateFixture(t)
		_, err := d.CompleteCheckIn(ctx, fx.pin.ID, fx.invitation.ID, fx.nric, time.Now())
		require.NoError(t, err)

		attendance, err := d.CompleteCheckOut(ctx, fx.invitation.ID, time.Now())

		require.NoError(t, err)
		require.NotNil(t, attendance.CheckoutTime)
		assert.True(t, attendance.IsFullAttendance)

		var invitation Invitation
		require.NoError(t, testDB.First(&invitation, fx.invitation.ID).Error)
		assert.Equal(t, InvitationCompleted, invitation.Status)
	})

	t.Run("second checkout is a conflict", func(t *testing.T) {
		fx := newGateFixture(t)
		_, err := d.CompleteCheckIn(ctx, fx.pin.ID, fx.invitation.ID, fx.nric, time.Now())
		require.NoError(t, err)
		_, err = d.CompleteCheckOut(ctx, fx.invitation.ID, time.Now())
		require.NoError(t, err)

		_, err = d.CompleteCheckOut(ctx, fx.invitation.ID, time.Now())

		assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
	})

	t.Run("checkout without attendance is a conflict", func(t *testing.T) {
		fx := newGateFixture(t)

		_, err := d.CompleteCheckOut(ctx, fx.invitation.ID, time.Now())

		assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
	})
}
