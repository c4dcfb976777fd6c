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
	ErrDuplicateNRIC  = repository.ErrDuplicateNRIC
	ErrDuplicatePhone = repository.ErrDuplicatePhone
)

type RegistrationRepository interface {
	GetByToken(ctx context.Context, token string) (domain.Invitation, error)
	Register(ctx context.Context, id uint, invitee domain.Invitation, now time.Time) (domain.Invitation, error)
}

// RegistrationService consumes invitation tokens: each token admits exactly
// one registration, and an invitee identity (NRIC, phone) may appear on at
// most one invitation ever.
type RegistrationService struct {
	repo RegistrationRepository
	now  func() time.Time
}

func NewRegistrationService(repo RegistrationRepository) *RegistrationService {
	return &RegistrationService{
		repo: repo,
		now:  time.Now,
	}
}

// ResolveByToken looks the invitation up for display before the invitee
// fills the registration form. A token whose invitation has left pending is
// permanently dead for registration.
func (s *RegistrationService) ResolveByToken(ctx context.Context, token string) (domain.Invitation, error) {
	invitation, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}

		return domain.Invitation{}, fmt.Errorf("s.repo.GetByToken -> %w", err)
	}

	if invitation.Status != domain.InvitationPending {
		return domain.Invitation{}, ErrInvitationAlreadyUsed
	}

	return invitation, nil
}

// Register captures the invitee identity against the invitation the token
// resolves to. The duplicate-identity and single-use checks are enforced
// in one transaction; success is irreversible.
func (s *RegistrationService) Register(ctx context.Context, token string, invitee domain.Invitation) (domain.Invitation, error) {
	invitation, err := s.ResolveByToken(ctx, token)
	if err != nil {
		return domain.Invitation{}, err
	}

	registered, err := s.repo.Register(ctx, invitation.ID, invitee, s.now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateNRIC):
			return domain.Invitation{}, ErrDuplicateNRIC
		case errors.Is(err, repository.ErrDuplicatePhone):
			return domain.Invitation{}, ErrDuplicatePhone
		case errors.Is(err, repository.ErrInvitationAlreadyUsed):
			return domain.Invitation{}, ErrInvitationAlreadyUsed
		}

		return domain.Invitation{}, fmt.Errorf("s.repo.Register -> %w", err)
	}

	zap.L().Info("invitation registered",
		zap.Uint("invitation_id", registered.ID),
		zap.Uint("slot_id", registered.SlotID))

	return registered, nil
}
