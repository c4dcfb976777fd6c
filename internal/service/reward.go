package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository"
)

type RewardRepository interface {
	GetByAgentID(ctx context.Context, agentID uint) ([]domain.Reward, error)
}

type RewardInvitationRepository interface {
	CountCompletedByAgent(ctx context.Context, agentID uint) (int64, error)
}

type RewardAgentRepository interface {
	FindAgentByUserID(ctx context.Context, userID uint) (domain.Agent, error)
}

// RewardService is a read-only view over accrued rewards. Accrual itself
// happens in an external process consuming invitation.completed events;
// this service never writes reward rows.
type RewardService struct {
	repo           RewardRepository
	invitationRepo RewardInvitationRepository
	agentRepo      RewardAgentRepository
	tierRepo       AuthTierRepository
}

func NewRewardService(repo RewardRepository, invitationRepo RewardInvitationRepository, agentRepo RewardAgentRepository, tierRepo AuthTierRepository) *RewardService {
	return &RewardService{
		repo:           repo,
		invitationRepo: invitationRepo,
		agentRepo:      agentRepo,
		tierRepo:       tierRepo,
	}
}

func (s *RewardService) ListForAgent(ctx context.Context, userID uint) ([]domain.Reward, error) {
	agent, err := s.agentRepo.FindAgentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return nil, ErrAgentNotFound
		}

		return nil, fmt.Errorf("s.agentRepo.FindAgentByUserID -> %w", err)
	}

	rewards, err := s.repo.GetByAgentID(ctx, agent.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetByAgentID -> %w", err)
	}

	return rewards, nil
}

// Summary aggregates the agent's stored rewards and, because accrual is
// eventually consistent, adds an estimate of what the completed invitations
// not yet materialized as rows are worth at the agent's current tier rate.
func (s *RewardService) Summary(ctx context.Context, userID uint) (domain.RewardSummary, error) {
	agent, err := s.agentRepo.FindAgentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return domain.RewardSummary{}, ErrAgentNotFound
		}

		return domain.RewardSummary{}, fmt.Errorf("s.agentRepo.FindAgentByUserID -> %w", err)
	}

	rewards, err := s.repo.GetByAgentID(ctx, agent.ID)
	if err != nil {
		return domain.RewardSummary{}, fmt.Errorf("s.repo.GetByAgentID -> %w", err)
	}

	summary := domain.RewardSummary{Rewards: rewards}
	for _, reward := range rewards {
		switch reward.Status {
		case domain.RewardConfirmed:
			summary.TotalConfirmed += reward.Amount
		case domain.RewardPaid:
			summary.TotalPaid += reward.Amount
		}
	}

	completed, err := s.invitationRepo.CountCompletedByAgent(ctx, agent.ID)
	if err != nil {
		return domain.RewardSummary{}, fmt.Errorf("s.invitationRepo.CountCompletedByAgent -> %w", err)
	}
	summary.CompletedCount = completed

	tier, err := s.tierRepo.GetTierByID(ctx, agent.TierID)
	if err != nil {
		if errors.Is(err, repository.ErrTierNotFound) {
			return summary, nil
		}

		return domain.RewardSummary{}, fmt.Errorf("s.tierRepo.GetTierByID -> %w", err)
	}
	summary.PendingEstimate = float64(completed) * tier.RewardAmount

	return summary, nil
}
