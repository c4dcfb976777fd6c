package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository"
)

var (
	ErrInvitationNotFound    = repository.ErrInvitationNotFound
	ErrInvitationAlreadyUsed = repository.ErrInvitationAlreadyUsed
	ErrQuotaExceeded         = repository.ErrQuotaExceeded
	ErrSlotInactive          = errors.New("slot is not active")
	ErrInvalidBatchCount     = errors.New("invitation count must be positive")
)

type InvitationRepository interface {
	CreateBatch(ctx context.Context, agentID, slotID uint, capacityType domain.CapacityType, tokens []string, limitPerSlot int) ([]domain.Invitation, error)
	CountForAgentSlot(ctx context.Context, agentID, slotID uint) (int64, error)
	GetByID(ctx context.Context, id uint) (domain.Invitation, error)
	GetByAgentID(ctx context.Context, agentID uint) ([]domain.Invitation, error)
	GetBySlotID(ctx context.Context, slotID uint) ([]domain.Invitation, error)
	MarkExpired(ctx context.Context, id uint) error
}

type InvitationAgentRepository interface {
	FindAgentByUserID(ctx context.Context, userID uint) (domain.Agent, error)
}

type InvitationService struct {
	repo      InvitationRepository
	agentRepo InvitationAgentRepository
	slotRepo  SlotRepository
	tierRepo  AuthTierRepository
}

func NewInvitationService(repo InvitationRepository, agentRepo InvitationAgentRepository, slotRepo SlotRepository, tierRepo AuthTierRepository) *InvitationService {
	return &InvitationService{
		repo:      repo,
		agentRepo: agentRepo,
		slotRepo:  slotRepo,
		tierRepo:  tierRepo,
	}
}

// CreateBatch mints count invitations for the agent on the slot, each with
// a fresh opaque token. The tier quota is enforced inside the insert
// transaction, so concurrent batches cannot oversubscribe the slot.
func (s *InvitationService) CreateBatch(ctx context.Context, userID, slotID uint, capacityType domain.CapacityType, count int) ([]domain.Invitation, error) {
	if count <= 0 {
		return nil, ErrInvalidBatchCount
	}

	agent, err := s.agentRepo.FindAgentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return nil, ErrAgentNotFound
		}

		return nil, fmt.Errorf("s.agentRepo.FindAgentByUserID -> %w", err)
	}

	slot, err := s.slotRepo.GetSlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}

		return nil, fmt.Errorf("s.slotRepo.GetSlotByID -> %w", err)
	}
	if !slot.IsActive {
		return nil, ErrSlotInactive
	}

	tier, err := s.tierRepo.GetTierByID(ctx, agent.TierID)
	if err != nil {
		if errors.Is(err, repository.ErrTierNotFound) {
			return nil, ErrTierNotFound
		}

		return nil, fmt.Errorf("s.tierRepo.GetTierByID -> %w", err)
	}

	tokens := make([]string, count)
	for i := range tokens {
		tokens[i] = uuid.NewString()
	}

	invitations, err := s.repo.CreateBatch(ctx, agent.ID, slotID, capacityType, tokens, tier.InvitationLimitPerSlot)
	if err != nil {
		if errors.Is(err, repository.ErrQuotaExceeded) {
			return nil, ErrQuotaExceeded
		}

		return nil, fmt.Errorf("s.repo.CreateBatch -> %w", err)
	}

	return invitations, nil
}

// RemainingQuota reports how many more invitations the agent may create for
// the slot at the current tier.
func (s *InvitationService) RemainingQuota(ctx context.Context, userID, slotID uint) (int, error) {
	agent, err := s.agentRepo.FindAgentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return 0, ErrAgentNotFound
		}

		return 0, fmt.Errorf("s.agentRepo.FindAgentByUserID -> %w", err)
	}

	tier, err := s.tierRepo.GetTierByID(ctx, agent.TierID)
	if err != nil {
		return 0, fmt.Errorf("s.tierRepo.GetTierByID -> %w", err)
	}

	used, err := s.repo.CountForAgentSlot(ctx, agent.ID, slotID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountForAgentSlot -> %w", err)
	}

	remaining := tier.InvitationLimitPerSlot - int(used)
	if remaining < 0 {
		remaining = 0
	}

	return remaining, nil
}

func (s *InvitationService) ListForAgent(ctx context.Context, userID uint) ([]domain.Invitation, error) {
	agent, err := s.agentRepo.FindAgentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return nil, ErrAgentNotFound
		}

		return nil, fmt.Errorf("s.agentRepo.FindAgentByUserID -> %w", err)
	}

	invitations, err := s.repo.GetByAgentID(ctx, agent.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetByAgentID -> %w", err)
	}

	return invitations, nil
}

func (s *InvitationService) ListForSlot(ctx context.Context, slotID uint) ([]domain.Invitation, error) {
	invitations, err := s.repo.GetBySlotID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetBySlotID -> %w", err)
	}

	return invitations, nil
}

func (s *InvitationService) GetInvitation(ctx context.Context, id uint) (domain.Invitation, error) {
	invitation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}

		return domain.Invitation{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return invitation, nil
}

// ExpireInvitation moves a pending or registered invitation to the
// absorbing expired state.
func (s *InvitationService) ExpireInvitation(ctx context.Context, id uint) error {
	err := s.repo.MarkExpired(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) || errors.Is(err, repository.ErrInvitationAlreadyUsed) {
			return err
		}

		return fmt.Errorf("s.repo.MarkExpired -> %w", err)
	}

	return nil
}
