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

type fakeRegistrationStore struct {
	invitations map[string]*domain.Invitation // keyed by token
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{
		invitations: make(map[string]*domain.Invitation),
	}
}

func (f *fakeRegistrationStore) add(token string, status domain.InvitationStatus) *domain.Invitation {
	inv := &domain.Invitation{
		ID:          uint(len(f.invitations) + 1),
		SlotID:      1,
		UniqueToken: token,
		Status:      status,
	}
	f.invitations[token] = inv

	return inv
}

func (f *fakeRegistrationStore) GetByToken(_ context.Context, token string) (domain.Invitation, error) {
	inv, ok := f.invitations[token]
	if !ok {
		return domain.Invitation{}, repository.ErrInvitationNotFound
	}

	return *inv, nil
}

func (f *fakeRegistrationStore) Register(_ context.Context, id uint, invitee domain.Invitation, now time.Time) (domain.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.ID == id {
			continue
		}
		if inv.InviteeNRIC == invitee.InviteeNRIC && inv.InviteeNRIC != "" {
			return domain.Invitation{}, repository.ErrDuplicateNRIC
		}
		if inv.InviteePhone == invitee.InviteePhone && inv.InviteePhone != "" {
			return domain.Invitation{}, repository.ErrDuplicatePhone
		}
	}

	for _, inv := range f.invitations {
		if inv.ID != id {
			continue
		}
		if inv.Status != domain.InvitationPending {
			return domain.Invitation{}, repository.ErrInvitationAlreadyUsed
		}

		inv.Status = domain.InvitationRegistered
		inv.InviteeName = invitee.InviteeName
		inv.InviteeNRIC = invitee.InviteeNRIC
		inv.InviteePhone = invitee.InviteePhone
		inv.InviteeEmail = invitee.InviteeEmail
		inv.InviteeOccupation = invitee.InviteeOccupation
		registered := now
		inv.RegisteredAt = &registered

		return *inv, nil
	}

	return domain.Invitation{}, repository.ErrInvitationNotFound
}

func TestRegistrationService_ResolveByToken(t *testing.T) {
	ctx := context.Background()

	t.Run("pending invitation resolves", func(t *testing.T) {
		store := newFakeRegistrationStore()
		store.add("tok-1", domain.InvitationPending)
		svc := NewRegistrationService(store)

		inv, err := svc.ResolveByToken(ctx, "tok-1")

		require.NoError(t, err)
		assert.Equal(t, "tok-1", inv.UniqueToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc := NewRegistrationService(newFakeRegistrationStore())

		_, err := svc.ResolveByToken(ctx, "missing")

		assert.ErrorIs(t, err, ErrInvitationNotFound)
	})

	t.Run("used token is dead", func(t *testing.T) {
		for _, status := range []domain.InvitationStatus{
			domain.InvitationRegistered,
			domain.InvitationAttended,
			domain.InvitationCompleted,
			domain.InvitationExpired,
		} {
			store := newFakeRegistrationStore()
			store.add("tok-1", status)
			svc := NewRegistrationService(store)

			_, err := svc.ResolveByToken(ctx, "tok-1")

			assert.ErrorIs(t, err, ErrInvitationAlreadyUsed, "status %v", status)
		}
	})
}

func TestRegistrationService_Register(t *testing.T) {
	ctx := context.Background()
	registeredAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	invitee := domain.Invitation{
		InviteeName:  "Jamie Tan",
		InviteeNRIC:  "S1234567A",
		InviteePhone: "91234567",
		InviteeEmail: "jamie@example.com",
	}

	t.Run("happy path captures identity and timestamps", func(t *testing.T) {
		store := newFakeRegistrationStore()
		store.add("tok-1", domain.InvitationPending)
		svc := NewRegistrationService(store)
		svc.now = func() time.Time { return registeredAt }

		inv, err := svc.Register(ctx, "tok-1", invitee)

		require.NoError(t, err)
		assert.Equal(t, domain.InvitationRegistered, inv.Status)
		assert.Equal(t, "S1234567A", inv.InviteeNRIC)
		require.NotNil(t, inv.RegisteredAt)
		assert.Equal(t, registeredAt, *inv.RegisteredAt)
	})

	t.Run("token is single use", func(t *testing.T) {
		store := newFakeRegistrationStore()
		store.add("tok-1", domain.InvitationPending)
		svc := NewRegistrationService(store)

		_, err := svc.Register(ctx, "tok-1", invitee)
		require.NoError(t, err)

		second := invitee
		second.InviteeNRIC = "S7654321B"
		second.InviteePhone = "98765432"
		_, err = svc.Register(ctx, "tok-1", second)
		assert.ErrorIs(t, err, ErrInvitationAlreadyUsed)
	})

	t.Run("duplicate nric leaves the invitation pending", func(t *testing.T) {
		store := newFakeRegistrationStore()
		first := store.add("tok-1", domain.InvitationPending)
		first.InviteeNRIC = "S1234567A"
		first.Status = domain.InvitationRegistered
		target := store.add("tok-2", domain.InvitationPending)
		svc := NewRegistrationService(store)

		_, err := svc.Register(ctx, "tok-2", invitee)

		assert.ErrorIs(t, err, ErrDuplicateNRIC)
		assert.Equal(t, domain.InvitationPending, store.invitations["tok-2"].Status)
		assert.Empty(t, target.InviteeNRIC)
	})

	t.Run("duplicate phone leaves the invitation pending", func(t *testing.T) {
		store := newFakeRegistrationStore()
		first := store.add("tok-1", domain.InvitationPending)
		first.InviteePhone = "91234567"
		first.InviteeNRIC = "S9999999Z"
		first.Status = domain.InvitationRegistered
		store.add("tok-2", domain.InvitationPending)
		svc := NewRegistrationService(store)

		_, err := svc.Register(ctx, "tok-2", invitee)

		assert.ErrorIs(t, err, ErrDuplicatePhone)
		assert.Equal(t, domain.InvitationPending, store.invitations["tok-2"].Status)
	})
}
