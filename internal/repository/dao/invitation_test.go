package dao

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTokens(n int) []string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = uniq("token")
	}

	return tokens
}

func TestInvitationDAO_InsertBatch(t *testing.T) {
	ctx := context.Background()
	d := NewInvitationDAO(testDB)

	t.Run("inserts pending invitations within quota", func(t *testing.T) {
		agent := seedAgent(t, 5)
		slot := seedSlot(t)

		created, err := d.InsertBatch(ctx, agent.ID, slot.ID, "agent", makeTokens(3), 5)

		require.NoError(t, err)
		require.Len(t, created, 3)
		for _, invitation := range created {
			assert.NotZero(t, invitation.ID)
			assert.Equal(t, InvitationPending, invitation.Status)
		}

		count, err := d.CountForAgentSlot(ctx, agent.ID, slot.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("rejects a batch that would exceed the quota", func(t *testing.T) {
		agent := seedAgent(t, 5)
		slot := seedSlot(t)

		_, err := d.InsertBatch(ctx, agent.ID, slot.ID, "agent", makeTokens(3), 5)
		require.NoError(t, err)

		_, err = d.InsertBatch(ctx, agent.ID, slot.ID, "agent", makeTokens(3), 5)
		assert.ErrorIs(t, err, ErrQuotaExceeded)

		count, err := d.CountForAgentSlot(ctx, agent.ID, slot.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("concurrent batches cannot oversubscribe the quota", func(t *testing.T) {
		agent := seedAgent(t, 5)
		slot := seedSlot(t)

		errs := make([]error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = d.InsertBatch(ctx, agent.ID, slot.ID, "agent", makeTokens(5), 5)
			}(i)
		}
		wg.Wait()

		var succeeded, rejected int
		for _, err := range errs {
			switch {
			case err == nil:
				succeeded++
			default:
				require.ErrorIs(t, err, ErrQuotaExceeded)
				rejected++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, rejected)

		count, err := d.CountForAgentSlot(ctx, agent.ID, slot.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})
}

func TestInvitationDAO_Register(t *testing.T) {
	ctx := context.Background()
	d := NewInvitationDAO(testDB)

	fields := func() RegistrationFields {
		return RegistrationFields{
			Name:       "Jamie Tan",
			NRIC:       uniqNRIC(),
			Phone:      uniqPhone(),
			Email:      "jamie@example.com",
			Occupation: "Engineer",
		}
	}

	t.Run("captures the invitee and moves to registered", func(t *testing.T) {
		agent := seedAgent(t, 5)
		slot := seedSlot(t)
		invitation := seedInvitation(t, agent.ID, slot.ID, InvitationPending, "", "")
		f := fields()

		registered, err := d.Register(ctx, invitation.ID, f, time.Now())

		require.NoError(t, err)
		assert.Equal(t, InvitationRegistered, registered.Status)
		require.NotNil(t, registered.InviteeNRIC)
		assert.Equal(t, f.NRIC, *registered.InviteeNRIC)
		assert.NotNil(t, registered.RegisteredAt)
	})

	t.Run("token is single use", func(t *testing.T) {
		agent := seedAgent(t, 5)
		slot := seedSlot(t)
		invitation := seedInvitation(t, agent.ID, slot.ID, InvitationPending, "", "")

		_, err := d.Register(ctx, invitation.ID, fields(), time.Now())
		require.NoError(t, err)

		_, err = d.Register(ctx, invitation.ID, fields(), time.Now())
		assert.ErrorIs(t, err, ErrInvitationAlreadyUsed)
	})

	t.Run("duplicate nric is rejected and leaves the invitation pending", func(t *testing.T) {
		agent := seedAgent(t, 5)
		slot := seedSlot(t)
		taken := fields()
		seedInvitation(t, agent.ID, slot.ID, InvitationRegistered, taken.NRIC, taken.Phone)
		invitation := seedInvitation(t, agent.ID, slot.ID, InvitationPending, "", "")

		dup := fields()
		dup.NRIC = taken.NRIC
		_, err := d.Register(ctx, invitation.ID, dup, time.Now())

		assert.ErrorIs(t, err, ErrDuplicateNRIC)

		current, findErr := d.FindByID(ctx, invitation.ID)
		require.NoError(t, findErr)
		assert.Equal(t, InvitationPending, current.Status)
	})

	t.Run("duplicate phone is rejected", func(t *testing.T) {
		agent := seedAgent(t, 5)
		slot := seedSlot(t)
		taken := fields()
		seedInvitation(t, agent.ID, slot.ID, InvitationRegistered, taken.NRIC, taken.Phone)
		invitation := seedInvitation(t, agent.ID, slot.ID, InvitationPending, "", "")

		dup := fields()
		dup.Phone = taken.Phone
		_, err := d.Register(ctx, invitation.ID, dup, time.Now())

		assert.ErrorIs(t, err, ErrDuplicatePhone)
	})

	t.Run("nric unique index backs up the duplicate scan", func(t *testing.T) {
		agent := seedAgent(t, 5)
		slot := seedSlot(t)
		nric := uniqNRIC()
		seedInvitation(t, agent.ID, slot.ID, InvitationRegistered, nric, uniqPhone())

		dup := Invitation{
			AgentID:      agent.ID,
			SlotID:       slot.ID,
			CapacityType: "agent",
			UniqueToken:  uniq("token"),
			Status:       InvitationRegistered,
			InviteeNRIC:  &nric,
		}
		err := testDB.Create(&dup).Error

		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, pgerrcode.UniqueViolation, pgErr.Code)
		assert.Contains(t, pgErr.Message, "uni_invitations_invitee_nric")
	})
}

func TestInvitationDAO_MarkExpired(t *testing.T) {
	ctx := context.Background()
	d := NewInvitationDAO(testDB)

	t.Run("expires a pending invitation", func(t *testing.T) {
		agent := seedAgent(t, 5)
		slot := seedSlot(t)
		invitation := seedInvitation(t, agent.ID, slot.ID, InvitationPending, "", "")

		require.NoError(t, d.MarkExpired(ctx, invitation.ID))

		current, err := d.FindByID(ctx, invitation.ID)
		require.NoError(t, err)
		assert.Equal(t, InvitationExpired, current.Status)
	})

	t.Run("attended invitations are untouchable", func(t *testing.T) {
		agent := seedAgent(t, 5)
		slot := seedSlot(t)
		invitation := seedInvitation(t, agent.ID, slot.ID, InvitationAttended, uniqNRIC(), uniqPhone())

		assert.ErrorIs(t, d.MarkExpired(ctx, invitation.ID), ErrInvitationAlreadyUsed)
	})

	t.Run("unknown invitation", func(t *testing.T) {
		assert.ErrorIs(t, d.MarkExpired(ctx, 999999), ErrInvitationNotFound)
	})
}

