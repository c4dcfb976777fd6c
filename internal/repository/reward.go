package repository

import (
	"context"
	"fmt"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository/dao"
)

type RewardDAO interface {
	FindByAgentID(ctx context.Context, agentID uint) ([]dao.Reward, error)
}

type RewardRepository struct {
	dao RewardDAO
}

func NewRewardRepository(dao RewardDAO) *RewardRepository {
	return &RewardRepository{
		dao: dao,
	}
}

func rewardDaoToDomain(r dao.Reward) domain.Reward {
	return domain.Reward{
		ID:           r.ID,
		AgentID:      r.AgentID,
		AttendanceID: r.AttendanceID,
		Amount:       r.Amount,
		CapacityType: domain.CapacityType(r.CapacityType),
		Status:       domain.RewardStatus(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r *RewardRepository) GetByAgentID(ctx context.Context, agentID uint) ([]domain.Reward, error) {
	daoRewards, err := r.dao.FindByAgentID(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByAgentID -> %w", err)
	}

	rewards := make([]domain.Reward, len(daoRewards))
	for i, rw := range daoRewards {
		rewards[i] = rewardDaoToDomain(rw)
	}

	return rewards, nil
}
